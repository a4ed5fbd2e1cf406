package seller

import (
	"testing"

	"github.com/guarzo/ebaypulse/internal/model"
)

func pairFor(id, category string, price float64, watchers, sold int) model.ListingEstimate {
	return model.ListingEstimate{
		Signal: model.ListingSignal{
			ItemID:     id,
			Price:      price,
			CategoryID: category,
			Seller: model.SellerProfile{
				Name:               "gadget_depot",
				FeedbackScore:      3200,
				FeedbackPercentage: 99.1,
			},
		},
		Estimate: model.SoldCountEstimate{
			ItemID:             id,
			WatchCountUsed:     watchers,
			EstimatedSoldCount: sold,
		},
	}
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze("gadget_depot", nil, DefaultThresholds())

	if report.SellerName != "gadget_depot" {
		t.Errorf("SellerName = %q, want gadget_depot", report.SellerName)
	}
	if report.TotalListings != 0 || report.EngagementRate != 0 || report.InventoryValue != 0 {
		t.Errorf("Analyze(nil) = %+v, want zero-valued report", report)
	}
	if report.MarketPosition != PositionWeak {
		t.Errorf("MarketPosition = %v, want WEAK", report.MarketPosition)
	}
}

func TestAnalyze_CatalogMetrics(t *testing.T) {
	pairs := []model.ListingEstimate{
		pairFor("1", "cat-a", 20, 30, 6),
		pairFor("2", "cat-a", 40, 10, 2),
		pairFor("3", "cat-b", 60, 20, 4),
		pairFor("4", "", 80, 4, 0),
	}

	report := Analyze("gadget_depot", pairs, DefaultThresholds())

	if report.TotalListings != 4 {
		t.Errorf("TotalListings = %d, want 4", report.TotalListings)
	}
	if report.EstimatedTotalSold != 12 {
		t.Errorf("EstimatedTotalSold = %d, want 12", report.EstimatedTotalSold)
	}
	if report.TotalWatchers != 64 {
		t.Errorf("TotalWatchers = %d, want 64", report.TotalWatchers)
	}
	if report.EngagementRate != 16 {
		t.Errorf("EngagementRate = %v, want 16", report.EngagementRate)
	}
	if report.InventoryValue != 200 {
		t.Errorf("InventoryValue = %v, want 200", report.InventoryValue)
	}
	if report.AveragePrice != 50 {
		t.Errorf("AveragePrice = %v, want 50", report.AveragePrice)
	}
	if report.CategoryBreadth != 2 {
		t.Errorf("CategoryBreadth = %d, want 2 (blank category ignored)", report.CategoryBreadth)
	}
	if report.Profile == nil || report.Profile.FeedbackScore != 3200 {
		t.Errorf("Profile = %+v, want seller profile carried over", report.Profile)
	}
}

func TestAnalyze_MarketPosition(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name     string
		watchers int
		want     string
	}{
		{"Strong engagement", 20, PositionStrong},
		{"Strong boundary", 15, PositionStrong},
		{"Competitive engagement", 8, PositionCompetitive},
		{"Competitive boundary", 5, PositionCompetitive},
		{"Weak engagement", 2, PositionWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := []model.ListingEstimate{pairFor("1", "cat-a", 25, tt.watchers, 1)}
			report := Analyze("gadget_depot", pairs, thresholds)
			if report.MarketPosition != tt.want {
				t.Errorf("MarketPosition = %v, want %v", report.MarketPosition, tt.want)
			}
		})
	}
}
