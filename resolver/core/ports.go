package core

import "context"

// Store is the canonical-ingredient side of the database. All name arguments
// are already normalized; the store only does case-insensitive comparison.
type Store interface {
	// MappingByName returns the exact mapping for a messy name, ErrNotFound
	// when none exists.
	MappingByName(ctx context.Context, name string) (Mapping, error)
	// MappingsContaining returns mappings whose messy name contains the given
	// string (substring, not whole-word; tier 2 semantics).
	MappingsContaining(ctx context.Context, name string) ([]Mapping, error)
	CanonicalByID(ctx context.Context, id int64) (Canonical, error)
	// CanonicalByNameOrAlias matches name against canonical names and alias
	// entries, case-insensitively and exactly.
	CanonicalByNameOrAlias(ctx context.Context, name string) (Canonical, error)
	// CanonicalsByAliasContaining returns canonicals with an alias containing
	// the given string (tier 4, last resort).
	CanonicalsByAliasContaining(ctx context.Context, name string) ([]Canonical, error)
	// AddMapping upserts a messy-name mapping; re-adding the same pair is a
	// no-op.
	AddMapping(ctx context.Context, messyName string, canonicalID int64) error
	// CreateCanonical inserts a new canonical with no aliases or allergens.
	CreateCanonical(ctx context.Context, name string) (Canonical, error)
}
