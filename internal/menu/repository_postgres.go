package menu

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

func (r *PostgresRepository) Create(ctx context.Context, m *Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	doc, err := json.Marshal(m)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO menus (id, user_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.UserID, doc, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Menu, error) {
	var (
		doc    []byte
		userID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT user_id, doc FROM menus WHERE id = $1
	`, id).Scan(&userID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalMenu(id, userID, doc)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Menu, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doc FROM menus
		WHERE user_id = $1
		ORDER BY doc->>'name'
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Menu
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		m, err := unmarshalMenu(id, userID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, m *Menu) error {
	m.UpdatedAt = time.Now()

	doc, err := json.Marshal(m)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE menus
		SET doc = $1, updated_at = $2
		WHERE id = $3
	`, doc, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalMenu(id, userID string, doc []byte) (*Menu, error) {
	var m Menu
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}
	m.ID = id
	m.UserID = userID
	return &m, nil
}
