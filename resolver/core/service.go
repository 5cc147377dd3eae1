package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/SimplyAvi/Dynable-live-sub000/normalize"
)

type Service struct {
	log   *slog.Logger
	store Store
}

func NewService(log *slog.Logger, store Store) *Service {
	return &Service{
		log:   log,
		store: store,
	}
}

// Resolve walks the matching tiers for one raw ingredient line. First hit
// wins; an exact mapping always beats a canonical alias. Unresolved comes
// back as Resolution{Resolved: false} with a nil error.
func (s *Service) Resolve(ctx context.Context, raw string, opts ResolveOptions) (Resolution, error) {
	name := normalize.Normalize(raw)
	if name == "" {
		return Resolution{}, nil
	}

	res, err := s.resolveNormalized(ctx, name)
	if err != nil {
		return Resolution{}, err
	}

	if res.Resolved {
		// Exact mappings are already persisted; everything below tier 1 can
		// be written through so the next lookup is exact.
		if opts.Persist && res.Tier != TierExactMapping {
			if err := s.store.AddMapping(ctx, name, res.CanonicalID); err != nil {
				return Resolution{}, fmt.Errorf("persist mapping %q: %w", name, err)
			}
		}
		return res, nil
	}

	if !opts.CreateMissing {
		return res, nil
	}

	canonical, err := s.store.CreateCanonical(ctx, name)
	if err != nil {
		return Resolution{}, fmt.Errorf("create canonical %q: %w", name, err)
	}
	if err := s.store.AddMapping(ctx, name, canonical.ID); err != nil {
		return Resolution{}, fmt.Errorf("map new canonical %q: %w", name, err)
	}
	s.log.Info("created canonical for unresolved name", "name", name, "id", canonical.ID)

	return Resolution{
		Resolved:      true,
		CanonicalID:   canonical.ID,
		CanonicalName: canonical.Name,
		Tier:          TierCanonicalExact,
	}, nil
}

func (s *Service) resolveNormalized(ctx context.Context, name string) (Resolution, error) {

	// tier 1: exact messy-name mapping
	mapping, err := s.store.MappingByName(ctx, name)
	if err == nil {
		return s.fromMapping(ctx, mapping, TierExactMapping)
	}
	if !errors.Is(err, ErrNotFound) {
		return Resolution{}, err
	}

	// tier 2: partial mapping, messy name contains the normalized string.
	// The substring runs one direction only; the shortest messy name wins so
	// repeated runs are deterministic.
	mappings, err := s.store.MappingsContaining(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if len(mappings) > 0 {
		slices.SortFunc(mappings, func(a, b Mapping) int {
			if len(a.MessyName) != len(b.MessyName) {
				return cmp.Compare(len(a.MessyName), len(b.MessyName))
			}
			return cmp.Compare(a.ID, b.ID)
		})
		return s.fromMapping(ctx, mappings[0], TierPartialMapping)
	}

	// tier 3: canonical name or alias, exact
	canonical, err := s.store.CanonicalByNameOrAlias(ctx, name)
	if err == nil {
		return resolved(canonical, TierCanonicalExact), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Resolution{}, err
	}

	// tier 4: alias substring, highest false-positive risk, always last
	candidates, err := s.store.CanonicalsByAliasContaining(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if len(candidates) > 0 {
		slices.SortFunc(candidates, func(a, b Canonical) int {
			if len(a.Name) != len(b.Name) {
				return cmp.Compare(len(a.Name), len(b.Name))
			}
			return cmp.Compare(a.ID, b.ID)
		})
		return resolved(candidates[0], TierAliasPartial), nil
	}

	return Resolution{}, nil
}

func (s *Service) fromMapping(ctx context.Context, m Mapping, tier Tier) (Resolution, error) {
	canonical, err := s.store.CanonicalByID(ctx, m.CanonicalID)
	if err != nil {
		// A mapping pointing at a dead canonical is a known defect the
		// deduplicator repairs; treat it as unresolved, not a failure.
		if errors.Is(err, ErrNotFound) {
			s.log.Warn("mapping references missing canonical", "messy_name", m.MessyName, "canonical_id", m.CanonicalID)
			return Resolution{}, nil
		}
		return Resolution{}, err
	}
	return resolved(canonical, tier), nil
}

func resolved(c Canonical, tier Tier) Resolution {
	return Resolution{
		Resolved:      true,
		CanonicalID:   c.ID,
		CanonicalName: c.Name,
		Tier:          tier,
	}
}

// ResolveBatch resolves many raw lines with a bounded worker pool, memoizing
// through the supplied run-scoped cache. Per-line store errors are counted
// and logged, never abort the batch. The report ranks unresolved names by
// frequency for operator follow-up.
func (s *Service) ResolveBatch(ctx context.Context, lines []string, concurrency int, cache *MappingCache, opts ResolveOptions) (BatchReport, error) {
	if concurrency < 1 {
		return BatchReport{}, ErrBadArguments
	}
	if cache == nil {
		cache = NewMappingCache()
	}

	var (
		mu         sync.Mutex
		resolvedN  int
		failedN    int
		unresolved = make(map[string]int)
	)

	jobs := make(chan string, concurrency*2)
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := range jobs {
				name := normalize.Normalize(line)
				if name == "" {
					continue
				}

				res, ok := cache.Get(name)
				if !ok {
					var err error
					res, err = s.Resolve(ctx, name, opts)
					if err != nil {
						s.log.Error("resolve failed", "name", name, "error", err)
						mu.Lock()
						failedN++
						mu.Unlock()
						continue
					}
					cache.Put(name, res)
				}

				mu.Lock()
				if res.Resolved {
					resolvedN++
				} else {
					unresolved[name]++
				}
				mu.Unlock()
			}
		}()
	}

	total := 0
	for _, line := range lines {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return BatchReport{}, ctx.Err()
		case jobs <- line:
			total++
		}
	}
	close(jobs)
	wg.Wait()

	report := BatchReport{
		Total:    total,
		Resolved: resolvedN,
		Failed:   failedN,
	}
	for name, count := range unresolved {
		report.Unresolved = append(report.Unresolved, UnresolvedEntry{Name: name, Count: count})
	}
	slices.SortFunc(report.Unresolved, func(a, b UnresolvedEntry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return report, nil
}
