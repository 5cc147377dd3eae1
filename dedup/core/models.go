package core

type Canonical struct {
	ID      int64
	Name    string
	Aliases []string
}

type Mapping struct {
	ID          int64
	MessyName   string
	CanonicalID int64
}

// Group is a set of canonicals suspected to be the same ingredient. Auto
// groups share one normalized name and are safe to merge without review.
type Group struct {
	Canonicals []Canonical
	// Normalized is the shared normalized form for auto groups, empty
	// otherwise.
	Normalized string
	Auto       bool
}

func (g Group) IDs() []int64 {
	ids := make([]int64, 0, len(g.Canonicals))
	for _, c := range g.Canonicals {
		ids = append(ids, c.ID)
	}
	return ids
}

// MergeReport describes one applied merge.
type MergeReport struct {
	SurvivorID        int64
	SurvivorName      string
	MergedIDs         []int64
	AliasesAdded      []string
	MappingsRepointed int64
	DuplicatesRemoved int64
}

// RunReport aggregates one dedup job run.
type RunReport struct {
	GroupsFound int
	Merged      []MergeReport
	NeedsReview []Group
	Failed      int
}
