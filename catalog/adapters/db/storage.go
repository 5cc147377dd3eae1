package db

import (
	"context"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SimplyAvi/Dynable-live-sub000/catalog/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "address", address, "error", err)
		return nil, err
	}
	return &DB{
		log:  log,
		conn: db,
	}, nil
}

type productRow struct {
	ID            int64          `db:"id"`
	Description   string         `db:"description"`
	BrandOwner    string         `db:"brand_owner"`
	CanonicalTag  *string        `db:"canonical_tag"`
	TagConfidence string         `db:"tag_confidence"`
	Allergens     pq.StringArray `db:"allergens"`
}

func (r productRow) toCore() core.Product {
	p := core.Product{
		ID:            r.ID,
		Description:   r.Description,
		BrandOwner:    r.BrandOwner,
		TagConfidence: core.Confidence(r.TagConfidence),
		Allergens:     r.Allergens,
	}
	if r.CanonicalTag != nil {
		p.CanonicalTag = *r.CanonicalTag
	}
	return p
}

func (db *DB) ProductsByTag(ctx context.Context, tag string) ([]core.Product, error) {
	var rows []productRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, description, brand_owner, canonical_tag, tag_confidence, allergens
		FROM products
		WHERE lower(canonical_tag) = lower($1)
		ORDER BY description, id`, tag)
	if err != nil {
		return nil, err
	}
	res := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toCore())
	}
	return res, nil
}

type substituteRow struct {
	ID          int64   `db:"id"`
	CanonicalID int64   `db:"canonical_id"`
	Name        string  `db:"substitute_name"`
	Notes       *string `db:"notes"`
}

func (db *DB) Substitutes(ctx context.Context, canonical string) ([]core.Substitute, error) {
	var rows []substituteRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT s.id, s.canonical_id, s.substitute_name, s.notes
		FROM ingredient_substitutes s
		JOIN canonical_ingredients c ON c.id = s.canonical_id
		WHERE lower(c.name) = lower($1)
		ORDER BY s.substitute_name`, canonical)
	if err != nil {
		return nil, err
	}
	res := make([]core.Substitute, 0, len(rows))
	for _, r := range rows {
		sub := core.Substitute{
			ID:          r.ID,
			CanonicalID: r.CanonicalID,
			Name:        r.Name,
		}
		if r.Notes != nil {
			sub.Notes = *r.Notes
		}
		res = append(res, sub)
	}
	return res, nil
}

func (db *DB) HasProductWithTag(ctx context.Context, tag string) (bool, error) {
	var exists bool
	err := db.conn.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM products WHERE lower(canonical_tag) = lower($1)
		)`, tag)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
