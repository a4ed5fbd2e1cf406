// Package insights is the engine's front door: it wires the normalizer,
// estimators, and aggregators into the three request shapes the presentation
// layer consumes, with write-through caching of computed reports.
package insights

import (
	"fmt"
	"log"

	"github.com/guarzo/ebaypulse/internal/cache"
	"github.com/guarzo/ebaypulse/internal/estimate"
	"github.com/guarzo/ebaypulse/internal/market"
	"github.com/guarzo/ebaypulse/internal/match"
	"github.com/guarzo/ebaypulse/internal/model"
	"github.com/guarzo/ebaypulse/internal/normalize"
	"github.com/guarzo/ebaypulse/internal/seller"
)

// Service computes listing estimates and market/seller reports. The engine
// itself is pure; the cache is the only collaborator with state and is
// optional.
type Service struct {
	weights          estimate.Weights
	marketThresholds market.Thresholds
	sellerThresholds seller.Thresholds
	matchThresholds  match.Thresholds
	store            *cache.Store
}

// Config tunes the service. Zero-valued fields fall back to the documented
// defaults.
type Config struct {
	Weights          *estimate.Weights
	MarketThresholds *market.Thresholds
	SellerThresholds *seller.Thresholds
	MatchThresholds  *match.Thresholds
	Store            *cache.Store // nil disables report caching
}

func NewService(cfg Config) *Service {
	s := &Service{
		weights:          estimate.DefaultWeights(),
		marketThresholds: market.DefaultThresholds(),
		sellerThresholds: seller.DefaultThresholds(),
		matchThresholds:  match.DefaultThresholds(),
		store:            cfg.Store,
	}
	if cfg.Weights != nil {
		s.weights = *cfg.Weights
	}
	if cfg.MarketThresholds != nil {
		s.marketThresholds = *cfg.MarketThresholds
	}
	if cfg.SellerThresholds != nil {
		s.sellerThresholds = *cfg.SellerThresholds
	}
	if cfg.MatchThresholds != nil {
		s.matchThresholds = *cfg.MatchThresholds
	}
	return s
}

// MarketInsights is the keyword-scoped response: the aggregate report, the
// recommendation, and the per-listing estimates behind them.
type MarketInsights struct {
	Report         *market.MarketReport    `json:"report"`
	Recommendation *market.Recommendation  `json:"recommendation"`
	Listings       []model.ListingEstimate `json:"listings"`
	SkippedRecords int                     `json:"skipped_records"`
}

// SellerAnalytics is the seller-scoped response.
type SellerAnalytics struct {
	Report         *seller.Report          `json:"report"`
	Listings       []model.ListingEstimate `json:"listings"`
	SkippedRecords int                     `json:"skipped_records"`
}

// EstimateListing normalizes one raw record and estimates its sold count.
// Malformed input surfaces as a *normalize.MalformedListingError.
func (s *Service) EstimateListing(raw model.RawListing) (model.SoldCountEstimate, error) {
	sig, err := normalize.Normalize(raw)
	if err != nil {
		return model.SoldCountEstimate{}, fmt.Errorf("estimate listing: %w", err)
	}
	return estimate.SoldCount(sig, s.weights), nil
}

// AnalyzeMarket normalizes a keyword batch (capped at maxResults when
// positive), estimates each listing, aggregates, and recommends. Malformed
// records are skipped and counted rather than failing the batch.
func (s *Service) AnalyzeMarket(keyword string, raws []model.RawListing, maxResults int) (*MarketInsights, error) {
	if maxResults > 0 && len(raws) > maxResults {
		raws = raws[:maxResults]
	}

	pairs, skipped := s.estimateBatch(raws)

	report := market.Aggregate(keyword, pairs, s.marketThresholds)
	insights := &MarketInsights{
		Report:         report,
		Recommendation: market.Recommend(report, s.marketThresholds),
		Listings:       pairs,
		SkippedRecords: skipped,
	}

	s.writeThrough("market:"+keyword, insights)
	return insights, nil
}

// AnalyzeSeller runs the same pipeline scoped to one seller's catalog.
func (s *Service) AnalyzeSeller(sellerName string, raws []model.RawListing) (*SellerAnalytics, error) {
	if sellerName == "" {
		return nil, fmt.Errorf("analyze seller: seller name is required")
	}

	pairs, skipped := s.estimateBatch(raws)

	analytics := &SellerAnalytics{
		Report:         seller.Analyze(sellerName, pairs, s.sellerThresholds),
		Listings:       pairs,
		SkippedRecords: skipped,
	}

	s.writeThrough("seller:"+sellerName, analytics)
	return analytics, nil
}

// CachedMarket returns a previously computed market report when one is still
// live in the cache.
func (s *Service) CachedMarket(keyword string) (*MarketInsights, bool) {
	if s.store == nil {
		return nil, false
	}
	var insights MarketInsights
	hit, err := s.store.Get("market:"+keyword, &insights)
	if err != nil || !hit {
		return nil, false
	}
	return &insights, true
}

// ArbitrageMatches is the cross-marketplace response: listing/supplier pairs
// that cleared the similarity and margin thresholds.
type ArbitrageMatches struct {
	Matches        []match.ProductMatch `json:"matches"`
	SkippedRecords int                  `json:"skipped_records"`
}

// FindArbitrage normalizes a raw listing batch and pairs it against a
// supplier catalog. Malformed listings are skipped and counted, same as the
// market pipeline.
func (s *Service) FindArbitrage(raws []model.RawListing, supply []match.SupplierProduct) *ArbitrageMatches {
	signals := make([]model.ListingSignal, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		sig, err := normalize.Normalize(raw)
		if err != nil {
			skipped++
			continue
		}
		signals = append(signals, sig)
	}

	return &ArbitrageMatches{
		Matches:        match.Match(signals, supply, s.matchThresholds),
		SkippedRecords: skipped,
	}
}

func (s *Service) estimateBatch(raws []model.RawListing) ([]model.ListingEstimate, int) {
	pairs := make([]model.ListingEstimate, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		sig, err := normalize.Normalize(raw)
		if err != nil {
			// Only malformed records come back from Normalize; drop and move on.
			skipped++
			continue
		}
		pairs = append(pairs, model.ListingEstimate{
			Signal:   sig,
			Estimate: estimate.SoldCount(sig, s.weights),
		})
	}

	return pairs, skipped
}

// writeThrough parks a computed report in the cache. Failures are logged, not
// returned: caching is best-effort and never blocks a response.
func (s *Service) writeThrough(key string, value interface{}) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(key, value); err != nil {
		log.Printf("insights: cache write for %q failed: %v", key, err)
	}
}
