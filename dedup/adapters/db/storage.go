package db

import (
	"context"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SimplyAvi/Dynable-live-sub000/dedup/core"
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
	ID      int64          `db:"id"`
	Name    string         `db:"name"`
	Aliases pq.StringArray `db:"aliases"`
}

func (r canonicalRow) toCore() core.Canonical {
	return core.Canonical{
		ID:      r.ID,
		Name:    r.Name,
		Aliases: r.Aliases,
	}
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
		res = append(res, r.toCore())
	}
	return res, nil
}

func (db *DB) CanonicalsByIDs(ctx context.Context, ids []int64) ([]core.Canonical, error) {
	var rows []canonicalRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, name, aliases
		FROM canonical_ingredients
		WHERE id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	res := make([]core.Canonical, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toCore())
	}
	return res, nil
}

// ApplyMerge runs the whole merge in one transaction so a failure part way
// through never strands mappings on deleted canonicals.
func (db *DB) ApplyMerge(ctx context.Context, survivorID int64, mergedIDs []int64, aliases []string) (core.MergeStats, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.MergeStats{}, err
	}
	defer tx.Rollback()

	var stats core.MergeStats

	if _, err := tx.ExecContext(ctx, `
		UPDATE canonical_ingredients
		SET aliases = $2
		WHERE id = $1`,
		survivorID, pq.StringArray(aliases)); err != nil {
		return core.MergeStats{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE messy_ingredient_mappings
		SET canonical_id = $1
		WHERE canonical_id = ANY($2)`,
		survivorID, pq.Array(mergedIDs))
	if err != nil {
		return core.MergeStats{}, err
	}
	if stats.MappingsRepointed, err = res.RowsAffected(); err != nil {
		return core.MergeStats{}, err
	}

	res, err = tx.ExecContext(ctx, `
		DELETE FROM messy_ingredient_mappings m
		USING messy_ingredient_mappings k
		WHERE m.canonical_id = $1
		  AND k.canonical_id = $1
		  AND lower(m.messy_name) = lower(k.messy_name)
		  AND m.id > k.id`,
		survivorID)
	if err != nil {
		return core.MergeStats{}, err
	}
	if stats.DuplicatesRemoved, err = res.RowsAffected(); err != nil {
		return core.MergeStats{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM canonical_ingredients
		WHERE id = ANY($1)`,
		pq.Array(mergedIDs)); err != nil {
		return core.MergeStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return core.MergeStats{}, err
	}
	return stats, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
