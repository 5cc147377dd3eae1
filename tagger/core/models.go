package core

// GenericBrand is the sentinel brand owner for non-branded products.
const GenericBrand = "Generic"

// Confidence is the trust level of an automatic canonical tag. Stored as
// text; ordering goes through rank, not string comparison.
type Confidence string

const (
	ConfidenceNone      Confidence = "none"
	ConfidenceSuggested Confidence = "suggested"
	ConfidenceConfident Confidence = "confident"
	ConfidenceVerified  Confidence = "verified"
)

func (c Confidence) rank() int {
	switch c {
	case ConfidenceSuggested:
		return 1
	case ConfidenceConfident:
		return 2
	case ConfidenceVerified:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether c meets the given minimum trust level.
func (c Confidence) AtLeast(minimum Confidence) bool {
	return c.rank() >= minimum.rank()
}

// Canonical is the slice of the canonical store the tagger needs: identity
// names to match product descriptions against.
type Canonical struct {
	ID      int64
	Name    string
	Aliases []string
}

// Product is a branded grocery product record. The tagger owns CanonicalTag
// and TagConfidence; everything else is read-only here.
type Product struct {
	ID            int64
	Description   string
	BrandOwner    string
	CanonicalTag  string
	TagConfidence Confidence
	Allergens     []string
}

// Branded reports whether the product has a real brand owner.
func (p Product) Branded() bool {
	return p.BrandOwner != "" && p.BrandOwner != GenericBrand
}

// TagResult is a proposed tag for one product description.
type TagResult struct {
	Tag        string
	Confidence Confidence
}

// RunOptions control a bulk tagging pass. Retag revisits already-tagged
// products (idempotent overwrite). BrandedOnly skips Generic products, a
// call-site policy for branded curation runs.
type RunOptions struct {
	Retag       bool
	BrandedOnly bool
}

// RunReport summarizes a bulk tagging or tag-fix pass. Failed counts
// per-product store errors; the run continues past them.
type RunReport struct {
	Scanned  int
	Tagged   int
	Verified int
	Skipped  int
	Cleared  int
	Failed   int
}
