package auth

import "time"

// User is the account that owns ingredients, recipes, menus, purchases
// and shopping lists.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Company   string    `json:"company,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
