package doctor

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry holds checkers in registration order and fixers by ID.
type Registry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
	fixers   map[string]Fixer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fixers: make(map[string]Fixer)}
}

// RegisterChecker adds a checker.
func (r *Registry) RegisterChecker(checkers ...HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkers = append(r.checkers, checkers...)
}

// RegisterFixer adds a fixer, replacing one with the same ID.
func (r *Registry) RegisterFixer(fixers ...Fixer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range fixers {
		r.fixers[f.ID()] = f
	}
}

// Fixer looks up a fixer by ID.
//
//nolint:ireturn // lookup of a registered implementation
func (r *Registry) Fixer(id string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fixers[id]

	return f, ok
}

// Run executes the checkers in the given categories concurrently, or all of
// them when none are given. Results keep registration order.
func (r *Registry) Run(ctx context.Context, categories ...Category) []CheckResult {
	r.mu.RLock()

	selected := make([]HealthChecker, 0, len(r.checkers))
	for _, c := range r.checkers {
		if len(categories) == 0 || slices.Contains(categories, c.Category()) {
			selected = append(selected, c)
		}
	}

	r.mu.RUnlock()

	results := make([]CheckResult, len(selected))
	g, gctx := errgroup.WithContext(ctx)

	for i, checker := range selected {
		g.Go(func() error {
			result := checker.Check(gctx)
			result.Category = checker.Category()

			if result.Name == "" {
				result.Name = checker.Name()
			}

			results[i] = result

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}
