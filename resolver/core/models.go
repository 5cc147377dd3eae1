package core

// Canonical is a deduplicated ingredient identity. Name is unique
// case-insensitively; aliases collect alternative spellings folded into it.
type Canonical struct {
	ID        int64
	Name      string
	Aliases   []string
	Allergens []string
}

// Mapping is a many-to-one edge from a messy recipe phrasing to a canonical.
type Mapping struct {
	ID          int64
	MessyName   string
	CanonicalID int64
}

// Tier records which matching strategy produced a resolution. Lower tiers are
// strictly more trustworthy.
type Tier int

const (
	TierNone Tier = iota
	TierExactMapping
	TierPartialMapping
	TierCanonicalExact
	TierAliasPartial
)

func (t Tier) String() string {
	switch t {
	case TierExactMapping:
		return "exact mapping"
	case TierPartialMapping:
		return "partial mapping"
	case TierCanonicalExact:
		return "canonical match"
	case TierAliasPartial:
		return "alias partial match"
	default:
		return "unresolved"
	}
}

// Resolution is the outcome of resolving one ingredient string. Unresolved is
// data, not an error.
type Resolution struct {
	Resolved      bool
	CanonicalID   int64
	CanonicalName string
	Tier          Tier
}

// ResolveOptions are caller-supplied policy knobs. Persist writes the
// resolved name back as a new mapping (write-through is opt-in, it changes
// every future resolution of that string). CreateMissing mints a new
// canonical when nothing matches; only seeding jobs turn it on.
type ResolveOptions struct {
	Persist       bool
	CreateMissing bool
}

// UnresolvedEntry is one line of the operator-facing unmapped report.
type UnresolvedEntry struct {
	Name  string
	Count int
}

// BatchReport summarizes a bulk resolution run.
type BatchReport struct {
	Total      int
	Resolved   int
	Failed     int
	Unresolved []UnresolvedEntry
}
