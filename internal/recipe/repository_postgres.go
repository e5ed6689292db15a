package recipe

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

func (r *PostgresRepository) Create(ctx context.Context, rec *Recipe) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO recipes (id, user_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.UserID, doc, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	var (
		doc    []byte
		userID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT user_id, doc FROM recipes WHERE id = $1
	`, id).Scan(&userID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalRecipe(id, userID, doc)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM recipes
		WHERE user_id = $1
		ORDER BY doc->>'name'
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Recipe
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		rec, err := unmarshalRecipe(id, userID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, rec *Recipe) error {
	rec.UpdatedAt = time.Now()

	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE recipes
		SET doc = $1, updated_at = $2
		WHERE id = $3
	`, doc, rec.UpdatedAt, rec.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalRecipe(id, userID string, doc []byte) (*Recipe, error) {
	var rec Recipe
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, err
	}
	rec.ID = id
	rec.UserID = userID
	return &rec, nil
}
