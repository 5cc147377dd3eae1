package core

import "context"

// Store is the product-catalog side of the database plus the canonical names
// needed to build the match index.
type Store interface {
	// Canonicals returns every live canonical with its aliases.
	Canonicals(ctx context.Context) ([]Canonical, error)
	// Products returns tagging candidates. With untaggedOnly, products that
	// already carry a tag are skipped at the query.
	Products(ctx context.Context, untaggedOnly bool) ([]Product, error)
	// TaggedProducts returns products carrying any tag, for corrective
	// passes.
	TaggedProducts(ctx context.Context) ([]Product, error)
	// SetTag stamps tag and confidence on a product. Re-stamping the same
	// values is a no-op, not an error.
	SetTag(ctx context.Context, productID int64, tag string, confidence Confidence) error
	// ClearTag resets a product to untagged.
	ClearTag(ctx context.Context, productID int64) error
}

// Events notifies downstream consumers that product tags changed.
type Events interface {
	NotifyCatalogChanged(ctx context.Context) error
}
