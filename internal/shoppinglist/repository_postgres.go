package shoppinglist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *ShoppingList) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	doc, err := json.Marshal(l)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO shopping_lists (id, user_id, is_active, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, l.ID, l.UserID, l.IsActive, doc, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ShoppingList, error) {
	var (
		doc    []byte
		userID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT user_id, doc FROM shopping_lists WHERE id = $1
	`, id).Scan(&userID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalList(id, userID, doc)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*ShoppingList, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM shopping_lists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ShoppingList
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		l, err := unmarshalList(id, userID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FindActive(ctx context.Context, userID string) (*ShoppingList, error) {
	var (
		id  string
		doc []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, doc FROM shopping_lists
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&id, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalList(id, userID, doc)
}

func (r *PostgresRepository) Update(ctx context.Context, l *ShoppingList) error {
	l.UpdatedAt = time.Now()

	doc, err := json.Marshal(l)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE shopping_lists
		SET is_active = $1, doc = $2, updated_at = $3
		WHERE id = $4
	`, l.IsActive, doc, l.UpdatedAt, l.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalList(id, userID string, doc []byte) (*ShoppingList, error) {
	var l ShoppingList
	if err := json.Unmarshal(doc, &l); err != nil {
		return nil, err
	}
	l.ID = id
	l.UserID = userID
	return &l, nil
}
