package ingredient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	now := time.Now()
	ing.CreatedAt = now
	ing.UpdatedAt = now

	doc, err := json.Marshal(ing)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO ingredients (id, user_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ing.ID, ing.UserID, doc, ing.CreatedAt, ing.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	var (
		doc    []byte
		userID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT user_id, doc FROM ingredients WHERE id = $1
	`, id).Scan(&userID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalIngredient(id, userID, doc)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM ingredients
		WHERE user_id = $1
		ORDER BY doc->>'name'
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIngredients(rows, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, ing *Ingredient) error {
	ing.UpdatedAt = time.Now()

	doc, err := json.Marshal(ing)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET doc = $1, updated_at = $2
		WHERE id = $3
	`, doc, ing.UpdatedAt, ing.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) FindByBarcode(ctx context.Context, userID, barcode string) (*Ingredient, error) {
	var (
		id  string
		doc []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, doc FROM ingredients
		WHERE user_id = $1 AND doc->>'barcode' = $2
		LIMIT 1
	`, userID, barcode).Scan(&id, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalIngredient(id, userID, doc)
}

func (r *PostgresRepository) ListLowStock(ctx context.Context, userID string, threshold decimal.Decimal) ([]*Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM ingredients
		WHERE user_id = $1
		  AND (doc->>'inStock')::boolean = TRUE
		  AND (doc->>'stockQuantity')::numeric < $2
		ORDER BY (doc->>'stockQuantity')::numeric
	`, userID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIngredients(rows, userID)
}

func unmarshalIngredient(id, userID string, doc []byte) (*Ingredient, error) {
	var ing Ingredient
	if err := json.Unmarshal(doc, &ing); err != nil {
		return nil, err
	}
	ing.ID = id
	ing.UserID = userID
	return &ing, nil
}

func scanIngredients(rows pgx.Rows, userID string) ([]*Ingredient, error) {
	var out []*Ingredient
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		ing, err := unmarshalIngredient(id, userID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}
