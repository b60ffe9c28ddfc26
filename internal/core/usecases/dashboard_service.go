package usecases

import (
	"context"
	"encoding/json"
	"log/slog"

	"jobsight/internal/core/domain"
	"jobsight/internal/core/ports"
	"jobsight/internal/pkg/metrics"
)

// DashboardService answers every dashboard query from an immutable base
// table loaded once at startup. Filtering and aggregation are pure
// recomputations from that table, so the service is safe for concurrent
// use without locking.
type DashboardService struct {
	base     []domain.Listing
	skillMap []domain.SkillMapRow
	summary  domain.Summary
	states   []string
	cities   []string

	cache    ports.CacheService
	events   ports.EventPublisher
	cacheTTL int
}

// NewDashboardService derives the static tables (summary, dropdown
// options, skill map) from the base table. cache and events may be nil;
// the service then recomputes every snapshot and publishes nothing.
func NewDashboardService(base []domain.Listing, cache ports.CacheService, events ports.EventPublisher, cacheTTLSeconds int) *DashboardService {
	s := &DashboardService{
		base:     base,
		skillMap: domain.BuildSkillMap(base),
		summary:  domain.Summarize(base),
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTLSeconds,
	}

	// Dropdown options keep first-seen dataset order.
	seenState := make(map[string]struct{})
	seenCity := make(map[string]struct{})
	for _, l := range base {
		if l.State != "" {
			if _, ok := seenState[l.State]; !ok {
				seenState[l.State] = struct{}{}
				s.states = append(s.states, l.State)
			}
		}
		if l.City != "" {
			if _, ok := seenCity[l.City]; !ok {
				seenCity[l.City] = struct{}{}
				s.cities = append(s.cities, l.City)
			}
		}
	}

	metrics.DatasetRows.Set(float64(len(base)))
	return s
}

// Summary returns the KPI card values for the unfiltered base table.
func (s *DashboardService) Summary() domain.Summary {
	return s.summary
}

// Options returns the distinct state and city values for the filter
// dropdowns.
func (s *DashboardService) Options() (states, cities []string) {
	return s.states, s.cities
}

// SkillMap returns the static skill-distribution map table. It is built
// from the full dataset and does not change with filter selections.
func (s *DashboardService) SkillMap() []domain.SkillMapRow {
	return s.skillMap
}

// Filter returns the listings matching the selection.
func (s *DashboardService) Filter(sel domain.Selection) []domain.Listing {
	return domain.Filter(s.base, sel)
}

// Snapshot returns the five chart tables for the selection, serving from
// cache when possible. A cache or broker failure never fails the request;
// the snapshot is simply recomputed from the base table.
func (s *DashboardService) Snapshot(ctx context.Context, sel domain.Selection) (domain.Snapshot, error) {
	cacheKey := "snapshot:" + sel.Key()
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var snap domain.Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				metrics.SnapshotsComputed.WithLabelValues("cache").Inc()
				return snap, nil
			}
		}
	}

	snap := domain.Aggregate(domain.Filter(s.base, sel), sel)
	metrics.SnapshotsComputed.WithLabelValues("compute").Inc()

	if s.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	if s.events != nil {
		if err := s.events.PublishSelectionApplied(ctx, sel, snap.Total); err != nil {
			slog.Debug("selection event publish failed", "error", err)
		}
	}

	return snap, nil
}
