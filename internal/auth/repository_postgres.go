package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Currency == "" {
		user.Currency = "USD"
	}

	query := `
		INSERT INTO users (id, name, email, password, company, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.Password, user.Company, user.Currency,
	)
	return err
}

func (r *PostgresUserRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresUserRepository) FindByID(id string) (*User, error) {
	query := `
		SELECT id, name, email, password, company, currency, created_at
		FROM users WHERE id=$1
	`
	row := r.db.QueryRow(context.Background(), query, id)

	user := &User{}
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Company, &user.Currency, &user.CreatedAt,
	); err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *PostgresUserRepository) FindByEmail(email string) (*User, error) {
	query := `
		SELECT id, name, email, password, company, currency, created_at
		FROM users WHERE email=$1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	user := &User{}
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Company, &user.Currency, &user.CreatedAt,
	); err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
