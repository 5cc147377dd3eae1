package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

type Service struct {
	log         *slog.Logger
	store       Store
	events      Events
	rules       RuleTable
	concurrency int
	limiter     *rate.Limiter

	running atomic.Bool
}

// ErrAlreadyRunning guards against overlapping bulk passes.
var ErrAlreadyRunning = fmt.Errorf("tagging run already in progress")

func NewService(
	log *slog.Logger,
	store Store,
	events Events,
	rules RuleTable,
	concurrency int,
	writesPerSecond float64,
) (*Service, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("wrong concurrency specified: %d", concurrency)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if writesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(writesPerSecond), int(writesPerSecond)+1)
	}

	return &Service{
		log:         log,
		store:       store,
		events:      events,
		rules:       rules,
		concurrency: concurrency,
		limiter:     limiter,
	}, nil
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

// Tag proposes a tag for one product against a prebuilt index, applying the
// verified escalation when the product qualifies. The bool is false when no
// acceptable match exists.
func (s *Service) Tag(p Product, ix *Index, opts RunOptions) (TagResult, bool) {
	if opts.BrandedOnly && !p.Branded() {
		return TagResult{}, false
	}

	result, ok := ix.Match(p.Description)
	if !ok {
		return TagResult{}, false
	}

	if rule, exists := s.rules[result.Tag]; exists {
		if p.Branded() && rule.matches(p.Description) {
			result.Confidence = ConfidenceVerified
		}
	}
	return result, true
}

// BulkTag runs a tagging pass over the catalog with a bounded worker pool.
// Writes are rate-limited and idempotent; per-product store errors are
// logged, counted and skipped. On any change, downstream caches are notified.
func (s *Service) BulkTag(ctx context.Context, opts RunOptions) (RunReport, error) {
	if err := s.lockRun(); err != nil {
		return RunReport{}, err
	}
	defer s.unlockRun()

	canonicals, err := s.store.Canonicals(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("load canonicals: %w", err)
	}
	ix := NewIndex(canonicals)
	s.log.Info("built tag index", "phrases", ix.Len(), "canonicals", len(canonicals))

	products, err := s.store.Products(ctx, !opts.Retag)
	if err != nil {
		return RunReport{}, fmt.Errorf("load products: %w", err)
	}

	var (
		mu     sync.Mutex
		report RunReport
	)
	report.Scanned = len(products)

	jobs := make(chan Product, s.concurrency*2)
	var wg sync.WaitGroup

	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				result, ok := s.Tag(p, ix, opts)
				if !ok {
					mu.Lock()
					report.Skipped++
					mu.Unlock()
					continue
				}

				// re-stamping identical values still counts as tagged,
				// bulk re-runs are a normal operational pattern
				if err := s.limiter.Wait(ctx); err != nil {
					return
				}
				if err := s.store.SetTag(ctx, p.ID, result.Tag, result.Confidence); err != nil {
					s.log.Error("set tag failed", "product", p.ID, "tag", result.Tag, "error", err)
					mu.Lock()
					report.Failed++
					mu.Unlock()
					continue
				}

				mu.Lock()
				report.Tagged++
				if result.Confidence == ConfidenceVerified {
					report.Verified++
				}
				mu.Unlock()
			}
		}()
	}

	for _, p := range products {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return RunReport{}, ctx.Err()
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if report.Tagged > 0 {
		if err := s.events.NotifyCatalogChanged(ctx); err != nil {
			s.log.Error("catalog change notification failed", "error", err)
		}
	}
	return report, nil
}

// FixTags is the corrective pass: it clears tags whose canonical no longer
// exists or that fail the current validation gate, and downgrades nothing
// else. Safe to re-run; a clean catalog yields an all-zero report.
func (s *Service) FixTags(ctx context.Context) (RunReport, error) {
	if err := s.lockRun(); err != nil {
		return RunReport{}, err
	}
	defer s.unlockRun()

	canonicals, err := s.store.Canonicals(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("load canonicals: %w", err)
	}
	live := make(map[string]bool, len(canonicals))
	for _, c := range canonicals {
		live[c.Name] = true
	}

	products, err := s.store.TaggedProducts(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("load tagged products: %w", err)
	}

	var report RunReport
	report.Scanned = len(products)

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return RunReport{}, err
		}
		if live[p.CanonicalTag] && ValidTagName(p.CanonicalTag) {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return RunReport{}, err
		}
		if err := s.store.ClearTag(ctx, p.ID); err != nil {
			s.log.Error("clear tag failed", "product", p.ID, "tag", p.CanonicalTag, "error", err)
			report.Failed++
			continue
		}
		s.log.Debug("cleared stale tag", "product", p.ID, "tag", p.CanonicalTag)
		report.Cleared++
	}

	if report.Cleared > 0 {
		if err := s.events.NotifyCatalogChanged(ctx); err != nil {
			s.log.Error("catalog change notification failed", "error", err)
		}
	}
	return report, nil
}
