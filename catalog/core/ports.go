package core

import "context"

type Store interface {
	// ProductsByTag returns products stamped with the given canonical tag,
	// ordered by description ascending.
	ProductsByTag(ctx context.Context, tag string) ([]Product, error)
	// Substitutes returns the substitute options registered for a canonical
	// ingredient name.
	Substitutes(ctx context.Context, canonical string) ([]Substitute, error)
	// HasProductWithTag reports whether at least one product carries the tag.
	HasProductWithTag(ctx context.Context, tag string) (bool, error)
}
