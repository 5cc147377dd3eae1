package core

// Confidence mirrors the tag_confidence column on products.
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

func (c Confidence) AtLeast(min Confidence) bool {
	return c.rank() >= min.rank()
}

type Product struct {
	ID            int64
	Description   string
	BrandOwner    string
	CanonicalTag  string
	TagConfidence Confidence
	Allergens     []string
}

// Substitute is an alternative ingredient linked to a canonical one,
// e.g. almond milk offered in place of milk.
type Substitute struct {
	ID          int64
	CanonicalID int64
	Name        string
	Notes       string
}
