// Package refresh recomputes market reports for tracked keywords on a cron
// schedule, keeping the cache warm so interactive queries rarely pay for a
// live fetch.
package refresh

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/guarzo/ebaypulse/internal/insights"
	"github.com/guarzo/ebaypulse/internal/model"
)

// ListingSource fetches raw listings for a keyword. Satisfied by the eBay
// Finding client and, in tests, by a stub.
type ListingSource interface {
	SearchListings(ctx context.Context, keyword string, max int) ([]model.RawListing, error)
}

// Refresher schedules periodic market re-analysis for a tracked keyword set.
type Refresher struct {
	service    *insights.Service
	source     ListingSource
	maxResults int

	mu       sync.Mutex
	keywords map[string]struct{}
	cron     *cron.Cron
}

func New(service *insights.Service, source ListingSource, maxResults int) *Refresher {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &Refresher{
		service:    service,
		source:     source,
		maxResults: maxResults,
		keywords:   make(map[string]struct{}),
	}
}

// Track adds a keyword to the refresh set.
func (r *Refresher) Track(keyword string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keywords[keyword] = struct{}{}
}

// Untrack removes a keyword from the refresh set.
func (r *Refresher) Untrack(keyword string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keywords, keyword)
}

// Tracked returns the current keyword set.
func (r *Refresher) Tracked() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.keywords))
	for k := range r.keywords {
		out = append(out, k)
	}
	return out
}

// Start schedules RefreshAll on the given cron spec (e.g. "@every 6h") and
// begins running. Stop with Stop.
func (r *Refresher) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := r.RefreshAll(context.Background()); err != nil {
			log.Printf("refresh: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	return nil
}

// Stop halts the scheduler. Safe to call when never started.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c != nil {
		c.Stop()
	}
}

// RefreshAll re-analyzes every tracked keyword. Individual keyword failures
// are collected; one bad keyword does not stop the sweep.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	var firstErr error
	for _, keyword := range r.Tracked() {
		if err := r.refreshKeyword(ctx, keyword); err != nil {
			log.Printf("refresh %q: %v", keyword, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Refresher) refreshKeyword(ctx context.Context, keyword string) error {
	raws, err := r.source.SearchListings(ctx, keyword, r.maxResults)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}
	if _, err := r.service.AnalyzeMarket(keyword, raws, r.maxResults); err != nil {
		return fmt.Errorf("analyze market: %w", err)
	}
	return nil
}
