package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.LastUpdated = now

	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO supermarket_products (id, supermarket_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.SupermarketID, doc, p.CreatedAt, now)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var (
		doc           []byte
		supermarketID string
	)

	err := r.db.QueryRow(ctx, `
		SELECT supermarket_id, doc FROM supermarket_products WHERE id = $1
	`, id).Scan(&supermarketID, &doc)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalProduct(id, supermarketID, doc)
}

// sortColumns whitelists what callers may sort by. Anything else falls
// back to name.
var sortColumns = map[string]string{
	"name":        "doc->>'name'",
	"price":       "(doc->>'price')::numeric",
	"lastUpdated": "updated_at",
	"category":    "doc->>'category'",
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.SupermarketID != "" {
		where = append(where, "supermarket_id = "+arg(f.SupermarketID))
	}
	if f.Category != "" {
		where = append(where, "doc->>'category' = "+arg(f.Category))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(doc->>'name' ILIKE %s OR doc->>'description' ILIKE %s OR doc->>'brand' ILIKE %s)", p, p, p))
	}
	if f.MinPrice != nil {
		where = append(where, "(doc->>'price')::numeric >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "(doc->>'price')::numeric <= "+arg(*f.MaxPrice))
	}
	if f.OnSale {
		where = append(where, "(doc->>'isOnSale')::boolean = TRUE")
	}

	clause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM supermarket_products WHERE "+clause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[f.SortBy]
	if !ok {
		sortCol = sortColumns["name"]
	}
	dir := "ASC"
	if f.SortOrder == "desc" {
		dir = "DESC"
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(`
		SELECT id, supermarket_id, doc FROM supermarket_products
		WHERE %s
		ORDER BY %s %s
		LIMIT %s OFFSET %s
	`, clause, sortCol, dir, arg(f.Limit), arg(offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		var (
			id            string
			supermarketID string
			doc           []byte
		)
		if err := rows.Scan(&id, &supermarketID, &doc); err != nil {
			return nil, 0, err
		}
		p, err := unmarshalProduct(id, supermarketID, doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, p *Product) error {
	now := time.Now()

	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE supermarket_products
		SET supermarket_id = $1, doc = $2, updated_at = $3
		WHERE id = $4
	`, p.SupermarketID, doc, now, p.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM supermarket_products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func unmarshalProduct(id, supermarketID string, doc []byte) (*Product, error) {
	var p Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	p.ID = id
	p.SupermarketID = supermarketID
	return &p, nil
}
