package core

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const (
	defaultMinConfidence = ConfidenceConfident
	defaultPageSize      = 50
)

type Service struct {
	log           *slog.Logger
	store         Store
	cache         *ExistenceCache
	minConfidence Confidence
	pageSize      int
}

func NewService(log *slog.Logger, store Store, minConfidence Confidence, pageSize int) *Service {
	if minConfidence == "" {
		minConfidence = defaultMinConfidence
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		log:           log,
		store:         store,
		cache:         NewExistenceCache(),
		minConfidence: minConfidence,
		pageSize:      pageSize,
	}
}

// FindProducts returns products tagged with the canonical ingredient, or with
// the substitute named by substituteOverride when one is registered for it.
// Products below the confidence threshold or carrying an excluded allergen are
// dropped. An unknown canonical or substitute yields an empty list, not an
// error.
func (s *Service) FindProducts(ctx context.Context, canonical string, excludedAllergens []string, substituteOverride string) ([]Product, error) {
	canonical = strings.TrimSpace(strings.ToLower(canonical))
	if canonical == "" {
		return nil, nil
	}

	target := canonical
	if substituteOverride != "" {
		subs, err := s.store.Substitutes(ctx, canonical)
		if err != nil {
			return nil, fmt.Errorf("substitutes for %q: %w", canonical, err)
		}
		target = ""
		for _, sub := range subs {
			if strings.EqualFold(sub.Name, substituteOverride) {
				target = strings.ToLower(sub.Name)
				break
			}
		}
		if target == "" {
			s.log.Debug("substitute not registered", "canonical", canonical, "substitute", substituteOverride)
			return nil, nil
		}
	}

	products, err := s.store.ProductsByTag(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("products for %q: %w", target, err)
	}

	slices.SortFunc(products, func(a, b Product) int {
		if c := cmp.Compare(a.Description, b.Description); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	excluded := allergenSet(excludedAllergens)
	res := make([]Product, 0, min(len(products), s.pageSize))
	for _, p := range products {
		if !p.TagConfidence.AtLeast(s.minConfidence) {
			continue
		}
		if hitsAllergen(p.Allergens, excluded) {
			continue
		}
		res = append(res, p)
		if len(res) == s.pageSize {
			break
		}
	}
	return res, nil
}

func (s *Service) ListSubstitutes(ctx context.Context, canonical string) ([]Substitute, error) {
	canonical = strings.TrimSpace(strings.ToLower(canonical))
	if canonical == "" {
		return nil, nil
	}
	subs, err := s.store.Substitutes(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("substitutes for %q: %w", canonical, err)
	}
	return subs, nil
}

// HasRealProduct reports whether any product carries the canonical tag. Hits
// are memoized until the next catalog-changed event.
func (s *Service) HasRealProduct(ctx context.Context, canonical string) (bool, error) {
	canonical = strings.TrimSpace(strings.ToLower(canonical))
	if canonical == "" {
		return false, nil
	}
	if exists, ok := s.cache.Get(canonical); ok {
		return exists, nil
	}
	exists, err := s.store.HasProductWithTag(ctx, canonical)
	if err != nil {
		return false, fmt.Errorf("product existence for %q: %w", canonical, err)
	}
	s.cache.Put(canonical, exists)
	return exists, nil
}

// InvalidateProducts drops the existence cache.
func (s *Service) InvalidateProducts() {
	s.cache.Reset()
	s.log.Info("product existence cache invalidated")
}

func allergenSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(strings.ToLower(it))
		if it == "" {
			continue
		}
		set[it] = struct{}{}
	}
	return set
}

func hitsAllergen(allergens []string, excluded map[string]struct{}) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, a := range allergens {
		if _, ok := excluded[strings.ToLower(strings.TrimSpace(a))]; ok {
			return true
		}
	}
	return false
}
