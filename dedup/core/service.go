package core

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/SimplyAvi/Dynable-live-sub000/normalize"
)

// Service merges near-duplicate canonical ingredients. Merges are serialized
// by a run lock: two overlapping merges interleaving is the one concurrency
// hazard in this subsystem, and dedup is an offline job, so exclusivity beats
// cleverness.
type Service struct {
	log     *slog.Logger
	store   Store
	events  Events
	running atomic.Bool
}

func NewService(log *slog.Logger, store Store, events Events) *Service {
	return &Service{
		log:    log,
		store:  store,
		events: events,
	}
}

func (s *Service) lockRun() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return nil
}

func (s *Service) unlockRun() {
	s.running.Store(false)
}

// MergeGroup merges the canonicals with the given ids into one survivor. The
// survivor is the exact case-insensitive match to preferredName when there is
// one, otherwise the shortest name, ties broken by lowest id. Names and
// aliases of merged canonicals become aliases of the survivor, mappings are
// re-pointed, and the merged rows are deleted, all in one store transaction.
func (s *Service) MergeGroup(ctx context.Context, ids []int64, preferredName string) (MergeReport, error) {
	if err := s.lockRun(); err != nil {
		return MergeReport{}, err
	}
	defer s.unlockRun()

	return s.mergeGroup(ctx, ids, preferredName)
}

func (s *Service) mergeGroup(ctx context.Context, ids []int64, preferredName string) (MergeReport, error) {
	ids = uniqueIDs(ids)
	if len(ids) < 2 {
		return MergeReport{}, fmt.Errorf("%w: a merge group needs at least two distinct canonicals", ErrBadArguments)
	}

	candidates, err := s.store.CanonicalsByIDs(ctx, ids)
	if err != nil {
		return MergeReport{}, fmt.Errorf("load merge group: %w", err)
	}
	if len(candidates) != len(ids) {
		return MergeReport{}, fmt.Errorf("%w: merge group references missing canonicals", ErrNotFound)
	}

	survivor := pickSurvivor(candidates, preferredName)

	merged := make([]int64, 0, len(candidates)-1)
	others := make([]Canonical, 0, len(candidates)-1)
	for _, c := range candidates {
		if c.ID == survivor.ID {
			continue
		}
		merged = append(merged, c.ID)
		others = append(others, c)
	}
	slices.Sort(merged)

	aliases, added := unionAliases(survivor, others)

	stats, err := s.store.ApplyMerge(ctx, survivor.ID, merged, aliases)
	if err != nil {
		return MergeReport{}, fmt.Errorf("merge into %q: %w", survivor.Name, err)
	}

	s.log.Info("merged canonical group",
		"survivor", survivor.Name,
		"merged", len(merged),
		"mappings_repointed", stats.MappingsRepointed,
		"duplicates_removed", stats.DuplicatesRemoved)

	return MergeReport{
		SurvivorID:        survivor.ID,
		SurvivorName:      survivor.Name,
		MergedIDs:         merged,
		AliasesAdded:      added,
		MappingsRepointed: stats.MappingsRepointed,
		DuplicatesRemoved: stats.DuplicatesRemoved,
	}, nil
}

// FindGroups scans all canonicals and groups the suspected duplicates:
// canonicals whose normalized names are equal, or where one normalized name
// whole-word contains the other ("garlic" and "garlic clove"). Equal-name
// groups are flagged auto-approvable; containment groups need an operator.
func (s *Service) FindGroups(ctx context.Context) ([]Group, error) {
	canonicals, err := s.store.Canonicals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load canonicals: %w", err)
	}

	norms := make([]string, len(canonicals))
	for i, c := range canonicals {
		norms[i] = normalize.Normalize(c.Name)
	}

	parent := make([]int, len(canonicals))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := range canonicals {
		if norms[i] == "" {
			continue
		}
		for j := i + 1; j < len(canonicals); j++ {
			if norms[j] == "" {
				continue
			}
			related := norms[i] == norms[j] ||
				normalize.ContainsPhrase(norms[i], norms[j]) ||
				normalize.ContainsPhrase(norms[j], norms[i])
			if related {
				parent[find(j)] = find(i)
			}
		}
	}

	members := make(map[int][]Canonical)
	memberNorms := make(map[int][]string)
	for i, c := range canonicals {
		root := find(i)
		members[root] = append(members[root], c)
		memberNorms[root] = append(memberNorms[root], norms[i])
	}

	var groups []Group
	for root, group := range members {
		if len(group) < 2 {
			continue
		}
		slices.SortFunc(group, func(a, b Canonical) int {
			return cmp.Compare(a.ID, b.ID)
		})
		g := Group{Canonicals: group, Auto: true}
		for _, n := range memberNorms[root] {
			if n != memberNorms[root][0] {
				g.Auto = false
				break
			}
		}
		if g.Auto {
			g.Normalized = memberNorms[root][0]
		}
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b Group) int {
		return cmp.Compare(a.Canonicals[0].ID, b.Canonicals[0].ID)
	})
	return groups, nil
}

// RunOptions control one dedup job run.
type RunOptions struct {
	// DryRun finds and reports groups without applying any merge.
	DryRun bool
}

// Run finds duplicate groups, merges the auto-approvable ones, and reports
// the rest for operator review. Per-group failures are logged and counted;
// the run continues.
func (s *Service) Run(ctx context.Context, opts RunOptions) (RunReport, error) {
	if err := s.lockRun(); err != nil {
		return RunReport{}, err
	}
	defer s.unlockRun()

	groups, err := s.FindGroups(ctx)
	if err != nil {
		return RunReport{}, err
	}

	report := RunReport{GroupsFound: len(groups)}
	for _, g := range groups {
		if !g.Auto || opts.DryRun {
			report.NeedsReview = append(report.NeedsReview, g)
			continue
		}
		mr, err := s.mergeGroup(ctx, g.IDs(), g.Normalized)
		if err != nil {
			s.log.Error("group merge failed", "normalized", g.Normalized, "error", err)
			report.Failed++
			continue
		}
		report.Merged = append(report.Merged, mr)
	}

	if len(report.Merged) > 0 {
		if err := s.events.NotifyCatalogChanged(ctx); err != nil {
			s.log.Error("catalog change notification failed", "error", err)
		}
	}
	return report, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

func pickSurvivor(candidates []Canonical, preferredName string) Canonical {
	best := candidates[0]
	bestExact := strings.EqualFold(best.Name, preferredName)
	for _, c := range candidates[1:] {
		exact := strings.EqualFold(c.Name, preferredName)
		switch {
		case exact && !bestExact:
			best, bestExact = c, true
		case exact == bestExact:
			if len(c.Name) < len(best.Name) ||
				(len(c.Name) == len(best.Name) && c.ID < best.ID) {
				best = c
			}
		}
	}
	return best
}

// unionAliases folds the names and aliases of the merged canonicals into the
// survivor's alias set. The survivor's own name never becomes an alias, new
// aliases come last in sorted order, and comparison is case-insensitive.
func unionAliases(survivor Canonical, others []Canonical) (all, added []string) {
	seen := map[string]struct{}{
		strings.ToLower(survivor.Name): {},
	}
	for _, a := range survivor.Aliases {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		all = append(all, a)
	}
	for _, c := range others {
		for _, a := range append([]string{c.Name}, c.Aliases...) {
			key := strings.ToLower(strings.TrimSpace(a))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			added = append(added, a)
		}
	}
	slices.Sort(added)
	all = append(all, added...)
	return all, added
}
