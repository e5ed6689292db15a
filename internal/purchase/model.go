package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

var Categories = []string{"grocery", "wholesale", "specialty", "farmers_market", "other"}

var PaymentMethods = []string{"cash", "credit_card", "debit_card", "check", "bank_transfer", "other"}

// Item is one purchased line. Price is the line total paid, so the
// purchase total is the plain sum of item prices.
type Item struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient,omitempty"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	Notes        string          `json:"notes,omitempty"`
}

type Purchase struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	Date          time.Time       `json:"date"`
	Supplier      string          `json:"supplier,omitempty"`
	Category      string          `json:"category"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	ReceiptImage  string          `json:"receiptImage,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SumItems totals the line prices.
func (p *Purchase) SumItems() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Price)
	}
	return total
}

// ItemByID returns the index of an item, or -1.
func (p *Purchase) ItemByID(itemID string) int {
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
