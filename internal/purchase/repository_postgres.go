package purchase

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

func (r *PostgresRepository) Create(ctx context.Context, p *Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO purchases (id, user_id, purchase_date, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.UserID, p.Date, doc, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Purchase, error) {
	var (
		doc    []byte
		userID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT user_id, doc FROM purchases WHERE id = $1
	`, id).Scan(&userID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalPurchase(id, userID, doc)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM purchases
		WHERE user_id = $1
		ORDER BY purchase_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPurchases(rows, userID)
}

func (r *PostgresRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM purchases
		WHERE user_id = $1 AND purchase_date >= $2 AND purchase_date < $3
		ORDER BY purchase_date
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPurchases(rows, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, p *Purchase) error {
	p.UpdatedAt = time.Now()

	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE purchases
		SET purchase_date = $1, doc = $2, updated_at = $3
		WHERE id = $4
	`, p.Date, doc, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalPurchase(id, userID string, doc []byte) (*Purchase, error) {
	var p Purchase
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	p.ID = id
	p.UserID = userID
	return &p, nil
}

func scanPurchases(rows pgx.Rows, userID string) ([]*Purchase, error) {
	var out []*Purchase
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		p, err := unmarshalPurchase(id, userID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
