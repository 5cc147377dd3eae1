package core

import "context"

type Store interface {
	// Canonicals returns every canonical ingredient.
	Canonicals(ctx context.Context) ([]Canonical, error)
	// CanonicalsByIDs returns the canonicals with the given ids, in any order.
	CanonicalsByIDs(ctx context.Context, ids []int64) ([]Canonical, error)
	// ApplyMerge performs one merge atomically: replaces the survivor's
	// aliases, re-points mappings from the merged ids to the survivor, removes
	// duplicate mappings that result, and deletes the merged canonicals.
	// Either all steps land or none do.
	ApplyMerge(ctx context.Context, survivorID int64, mergedIDs []int64, aliases []string) (MergeStats, error)
}

type MergeStats struct {
	MappingsRepointed int64
	DuplicatesRemoved int64
}

type Events interface {
	NotifyCatalogChanged(ctx context.Context) error
}
