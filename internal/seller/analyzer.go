// Package seller reduces one seller's listing estimates into catalog-level
// performance metrics.
package seller

import (
	"github.com/guarzo/ebaypulse/internal/model"
)

// Report summarizes a single seller's catalog: engagement, inventory, reach,
// and a qualitative market-position label.
type Report struct {
	SellerName         string               `json:"seller_name"`
	Profile            *model.SellerProfile `json:"profile,omitempty"`
	TotalListings      int                  `json:"total_listings"`
	EstimatedTotalSold int                  `json:"estimated_total_sold"`
	TotalWatchers      int                  `json:"total_watchers"`
	EngagementRate     float64              `json:"engagement_rate"` // average watchers per listing
	InventoryValue     float64              `json:"inventory_value"` // sum of listing prices
	AveragePrice       float64              `json:"average_price"`
	CategoryBreadth    int                  `json:"category_breadth"` // distinct categories listed
	MarketPosition     string               `json:"market_position"`  // STRONG, COMPETITIVE, WEAK
}

const (
	PositionStrong      = "STRONG"
	PositionCompetitive = "COMPETITIVE"
	PositionWeak        = "WEAK"
)

// Thresholds are the engagement-rate cut points behind the market-position
// label.
type Thresholds struct {
	StrongEngagement      float64 // avg watchers/listing for STRONG (default 15)
	CompetitiveEngagement float64 // default 5
}

// DefaultThresholds returns the documented default cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongEngagement:      15,
		CompetitiveEngagement: 5,
	}
}

// Analyze reduces one seller's listing estimates into a Report. The same pure
// sum/count reduction as the market aggregator, scoped to a single catalog.
// An empty batch yields a zero report with a WEAK position.
func Analyze(sellerName string, pairs []model.ListingEstimate, t Thresholds) *Report {
	report := &Report{
		SellerName:     sellerName,
		MarketPosition: PositionWeak,
	}
	if len(pairs) == 0 {
		return report
	}

	categories := make(map[string]struct{})
	for _, p := range pairs {
		report.TotalListings++
		report.EstimatedTotalSold += p.Estimate.EstimatedSoldCount
		report.TotalWatchers += p.Estimate.WatchCountUsed
		report.InventoryValue += p.Signal.Price
		if p.Signal.CategoryID != "" {
			categories[p.Signal.CategoryID] = struct{}{}
		}
	}

	// The seller profile rides on every normalized listing; take the first.
	profile := pairs[0].Signal.Seller
	report.Profile = &profile

	report.CategoryBreadth = len(categories)
	report.EngagementRate = float64(report.TotalWatchers) / float64(report.TotalListings)
	report.AveragePrice = report.InventoryValue / float64(report.TotalListings)
	report.MarketPosition = position(report.EngagementRate, t)

	return report
}

func position(engagement float64, t Thresholds) string {
	switch {
	case engagement >= t.StrongEngagement:
		return PositionStrong
	case engagement >= t.CompetitiveEngagement:
		return PositionCompetitive
	default:
		return PositionWeak
	}
}
