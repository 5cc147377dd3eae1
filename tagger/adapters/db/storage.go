package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SimplyAvi/Dynable-live-sub000/tagger/core"
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

// isRetryable reports postgres errors worth another attempt.
func isRetryable(err error, codes ...string) bool {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return false
	}
	for _, c := range codes {
		if pg.Code == c {
			return true
		}
	}
	return false
}

type canonicalRow struct {
	ID      int64          `db:"id"`
	Name    string         `db:"name"`
	Aliases pq.StringArray `db:"aliases"`
}

func (db *DB) Canonicals(ctx context.Context) ([]core.Canonical, error) {
	var rows []canonicalRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, name, aliases
		FROM canonical_ingredients
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	res := make([]core.Canonical, 0, len(rows))
	for _, r := range rows {
		res = append(res, core.Canonical{
			ID:      r.ID,
			Name:    r.Name,
			Aliases: r.Aliases,
		})
	}
	return res, nil
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

func (db *DB) Products(ctx context.Context, untaggedOnly bool) ([]core.Product, error) {
	query := `
		SELECT id, description, brand_owner, canonical_tag, tag_confidence, allergens
		FROM products`
	if untaggedOnly {
		query += `
		WHERE canonical_tag IS NULL`
	}
	query += `
		ORDER BY id`

	var rows []productRow
	if err := db.conn.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	res := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toCore())
	}
	return res, nil
}

func (db *DB) TaggedProducts(ctx context.Context) ([]core.Product, error) {
	var rows []productRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, description, brand_owner, canonical_tag, tag_confidence, allergens
		FROM products
		WHERE canonical_tag IS NOT NULL
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	res := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toCore())
	}
	return res, nil
}

// SetTag is an idempotent overwrite; concurrent workers stamping disjoint
// products can still deadlock under load, so deadlocks get retried.
func (db *DB) SetTag(ctx context.Context, productID int64, tag string, confidence core.Confidence) error {
	const maxAttempts = 5
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := db.conn.ExecContext(ctx, `
			UPDATE products
			SET canonical_tag = $2, tag_confidence = $3
			WHERE id = $1
			  AND (canonical_tag IS DISTINCT FROM $2 OR tag_confidence IS DISTINCT FROM $3)`,
			productID, tag, string(confidence))
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err, "40P01") {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 150 * time.Millisecond):
		}
	}
	return lastErr
}

func (db *DB) ClearTag(ctx context.Context, productID int64) error {
	_, err := db.conn.ExecContext(ctx, `
		UPDATE products
		SET canonical_tag = NULL, tag_confidence = 'none'
		WHERE id = $1`, productID)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}
