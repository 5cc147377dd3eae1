package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SimplyAvi/Dynable-live-sub000/resolver/core"
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

type canonicalRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Aliases   pq.StringArray `db:"aliases"`
	Allergens pq.StringArray `db:"allergens"`
}

func (r canonicalRow) toCore() core.Canonical {
	return core.Canonical{
		ID:        r.ID,
		Name:      r.Name,
		Aliases:   r.Aliases,
		Allergens: r.Allergens,
	}
}

type mappingRow struct {
	ID          int64  `db:"id"`
	MessyName   string `db:"messy_name"`
	CanonicalID int64  `db:"canonical_id"`
}

func (db *DB) MappingByName(ctx context.Context, name string) (core.Mapping, error) {
	var row mappingRow
	err := db.conn.GetContext(ctx, &row, `
		SELECT id, messy_name, canonical_id
		FROM messy_ingredient_mappings
		WHERE lower(messy_name) = lower($1)
		ORDER BY id
		LIMIT 1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Mapping{}, core.ErrNotFound
	}
	if err != nil {
		return core.Mapping{}, err
	}
	return core.Mapping(row), nil
}

func (db *DB) MappingsContaining(ctx context.Context, name string) ([]core.Mapping, error) {
	var rows []mappingRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, messy_name, canonical_id
		FROM messy_ingredient_mappings
		WHERE lower(messy_name) LIKE '%' || lower($1) || '%'`, name)
	if err != nil {
		return nil, err
	}
	res := make([]core.Mapping, 0, len(rows))
	for _, r := range rows {
		res = append(res, core.Mapping(r))
	}
	return res, nil
}

func (db *DB) CanonicalByID(ctx context.Context, id int64) (core.Canonical, error) {
	var row canonicalRow
	err := db.conn.GetContext(ctx, &row, `
		SELECT id, name, aliases, allergens
		FROM canonical_ingredients
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Canonical{}, core.ErrNotFound
	}
	if err != nil {
		return core.Canonical{}, err
	}
	return row.toCore(), nil
}

func (db *DB) CanonicalByNameOrAlias(ctx context.Context, name string) (core.Canonical, error) {
	var row canonicalRow
	err := db.conn.GetContext(ctx, &row, `
		SELECT id, name, aliases, allergens
		FROM canonical_ingredients
		WHERE lower(name) = lower($1)
		   OR EXISTS (SELECT 1 FROM unnest(aliases) alias WHERE lower(alias) = lower($1))
		ORDER BY id
		LIMIT 1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Canonical{}, core.ErrNotFound
	}
	if err != nil {
		return core.Canonical{}, err
	}
	return row.toCore(), nil
}

func (db *DB) CanonicalsByAliasContaining(ctx context.Context, name string) ([]core.Canonical, error) {
	var rows []canonicalRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, name, aliases, allergens
		FROM canonical_ingredients
		WHERE EXISTS (
			SELECT 1 FROM unnest(aliases) alias
			WHERE lower(alias) LIKE '%' || lower($1) || '%'
		)`, name)
	if err != nil {
		return nil, err
	}
	res := make([]core.Canonical, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toCore())
	}
	return res, nil
}

// AddMapping inserts the pair unless it already exists. The table has no
// unique constraint on messy_name (historic duplicates are the
// deduplicator's problem), so idempotence is done here.
func (db *DB) AddMapping(ctx context.Context, messyName string, canonicalID int64) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO messy_ingredient_mappings (messy_name, canonical_id)
		SELECT lower($1), $2
		WHERE NOT EXISTS (
			SELECT 1 FROM messy_ingredient_mappings
			WHERE lower(messy_name) = lower($1) AND canonical_id = $2
		)`, messyName, canonicalID)
	return err
}

func (db *DB) CreateCanonical(ctx context.Context, name string) (core.Canonical, error) {
	var row canonicalRow
	err := db.conn.GetContext(ctx, &row, `
		INSERT INTO canonical_ingredients (name)
		VALUES (lower($1))
		ON CONFLICT ((lower(name))) DO UPDATE SET name = excluded.name
		RETURNING id, name, aliases, allergens`, name)
	if err != nil {
		return core.Canonical{}, err
	}
	return row.toCore(), nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
