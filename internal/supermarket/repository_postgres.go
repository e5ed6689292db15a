package supermarket

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

func (r *PostgresRepository) Create(ctx context.Context, s *Supermarket) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO supermarkets (id, name, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.Name, doc, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Supermarket, error) {
	var doc []byte

	err := r.db.QueryRow(ctx, `
		SELECT doc FROM supermarkets WHERE id = $1
	`, id).Scan(&doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalSupermarket(id, doc)
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*Supermarket, error) {
	var (
		id  string
		doc []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, doc FROM supermarkets WHERE name = $1
	`, name).Scan(&id, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalSupermarket(id, doc)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Supermarket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM supermarkets ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Supermarket
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		s, err := unmarshalSupermarket(id, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, s *Supermarket) error {
	s.UpdatedAt = time.Now()

	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE supermarkets
		SET name = $1, doc = $2, updated_at = $3
		WHERE id = $4
	`, s.Name, doc, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM supermarkets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalSupermarket(id string, doc []byte) (*Supermarket, error) {
	var s Supermarket
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, err
	}
	s.ID = id
	return &s, nil
}
