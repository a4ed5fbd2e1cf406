package match

import (
	"testing"

	"github.com/guarzo/ebaypulse/internal/model"
)

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "Identical titles",
			a:    "USB C Hub 7 in 1 Adapter",
			b:    "USB C Hub 7 in 1 Adapter",
			min:  0.999, max: 1,
		},
		{
			name: "Noise phrases ignored",
			a:    "Brand New Wireless Mouse Free Shipping",
			b:    "Wireless Mouse",
			min:  0.999, max: 1,
		},
		{
			name: "Same product different wording",
			a:    "Wireless Bluetooth Headphones Noise Cancelling",
			b:    "Bluetooth Headphones with Noise Cancelling",
			min:  0.4, max: 0.99,
		},
		{
			name: "Unrelated products",
			a:    "Garden Hose 50ft Expandable",
			b:    "iPhone 13 Pro Case Clear",
			min:  0, max: 0.39,
		},
		{
			name: "Empty title",
			a:    "",
			b:    "Wireless Mouse",
			min:  0, max: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleSimilarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TitleSimilarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestTitleSimilarity_Symmetric(t *testing.T) {
	a := "Wireless Bluetooth Headphones Noise Cancelling"
	b := "Bluetooth Headphones with Noise Cancelling"
	if x, y := TitleSimilarity(a, b), TitleSimilarity(b, a); x != y {
		t.Errorf("TitleSimilarity not symmetric: %v vs %v", x, y)
	}
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name string
		sell float64
		buy  float64
		want float64
	}{
		{"Half markup", 30, 20, 50},
		{"Good arbitrage", 45, 20, 125},
		{"Triple", 60, 20, 200},
		{"Zero buy price", 10, 0, 0},
		{"Selling at a loss", 15, 20, -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProfitMargin(tt.sell, tt.buy); got != tt.want {
				t.Errorf("ProfitMargin(%v, %v) = %v, want %v", tt.sell, tt.buy, got, tt.want)
			}
		})
	}
}

func listingFor(id, title string, price float64) model.ListingSignal {
	return model.ListingSignal{ItemID: id, Title: title, Price: price}
}

func TestMatch_PairsProfitableListings(t *testing.T) {
	listings := []model.ListingSignal{
		listingFor("1", "Wireless Bluetooth Headphones Noise Cancelling", 60),
	}
	supply := []SupplierProduct{
		{ID: "s1", Title: "Bluetooth Headphones with Noise Cancelling", Price: 20},
		{ID: "s2", Title: "Garden Hose 50ft Expandable", Price: 5},
	}

	matches := Match(listings, supply, DefaultThresholds())

	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	m := matches[0]
	if m.Supplier.ID != "s1" {
		t.Errorf("Supplier.ID = %q, want s1", m.Supplier.ID)
	}
	if m.ProfitMargin != 200 {
		t.Errorf("ProfitMargin = %v, want 200", m.ProfitMargin)
	}
	if m.PriceDifference != 40 {
		t.Errorf("PriceDifference = %v, want 40", m.PriceDifference)
	}
}

func TestMatch_RejectsUnprofitable(t *testing.T) {
	listings := []model.ListingSignal{
		listingFor("1", "Wireless Bluetooth Headphones Noise Cancelling", 60),
	}
	// Near-identical title, but the margin is nowhere near the threshold.
	supply := []SupplierProduct{
		{ID: "s1", Title: "Wireless Bluetooth Headphones Noise Cancelling", Price: 55},
	}

	if matches := Match(listings, supply, DefaultThresholds()); len(matches) != 0 {
		t.Errorf("len(matches) = %d, want 0 for thin margin", len(matches))
	}
}

func TestMatch_RejectsDissimilar(t *testing.T) {
	listings := []model.ListingSignal{
		listingFor("1", "Wireless Bluetooth Headphones Noise Cancelling", 60),
	}
	supply := []SupplierProduct{
		{ID: "s1", Title: "Garden Hose 50ft Expandable", Price: 5},
	}

	if matches := Match(listings, supply, DefaultThresholds()); len(matches) != 0 {
		t.Errorf("len(matches) = %d, want 0 for unrelated titles", len(matches))
	}
}

func TestMatch_PicksMostSimilarCandidate(t *testing.T) {
	listings := []model.ListingSignal{
		listingFor("1", "Wireless Bluetooth Headphones Noise Cancelling", 60),
	}
	supply := []SupplierProduct{
		{ID: "partial", Title: "Bluetooth Headphones with Noise Cancelling", Price: 20},
		{ID: "exact", Title: "Wireless Bluetooth Headphones Noise Cancelling", Price: 20},
	}

	matches := Match(listings, supply, DefaultThresholds())

	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1 (one match per listing)", len(matches))
	}
	if matches[0].Supplier.ID != "exact" {
		t.Errorf("Supplier.ID = %q, want exact", matches[0].Supplier.ID)
	}
}

func TestMatch_SortedBySimilarity(t *testing.T) {
	listings := []model.ListingSignal{
		listingFor("1", "Wireless Bluetooth Headphones Noise Cancelling", 60),
		listingFor("2", "USB C Hub 7 in 1 Adapter", 30),
	}
	supply := []SupplierProduct{
		{ID: "s1", Title: "Bluetooth Headphones with Noise Cancelling", Price: 20},
		{ID: "s2", Title: "USB C Hub 7 in 1 Adapter", Price: 10},
	}

	matches := Match(listings, supply, DefaultThresholds())

	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Listing.ItemID != "2" {
		t.Errorf("matches[0].Listing.ItemID = %q, want 2 (exact match sorts first)", matches[0].Listing.ItemID)
	}
	if matches[0].Similarity < matches[1].Similarity {
		t.Errorf("matches not sorted: %v < %v", matches[0].Similarity, matches[1].Similarity)
	}
}

func TestMatch_Empty(t *testing.T) {
	if matches := Match(nil, nil, DefaultThresholds()); len(matches) != 0 {
		t.Errorf("Match(nil, nil) = %v, want empty", matches)
	}
	listings := []model.ListingSignal{listingFor("1", "Wireless Mouse", 30)}
	if matches := Match(listings, nil, DefaultThresholds()); len(matches) != 0 {
		t.Errorf("Match with no supply = %v, want empty", matches)
	}
}

func TestFilterProfitable(t *testing.T) {
	matches := []ProductMatch{
		{Supplier: SupplierProduct{ID: "keep"}, ProfitMargin: 80},
		{Supplier: SupplierProduct{ID: "drop"}, ProfitMargin: 30},
		{Supplier: SupplierProduct{ID: "boundary"}, ProfitMargin: 50},
	}

	kept := FilterProfitable(matches, DefaultThresholds())

	if len(kept) != 2 {
		t.Fatalf("len(kept) = %d, want 2", len(kept))
	}
	for _, m := range kept {
		if m.Supplier.ID == "drop" {
			t.Error("FilterProfitable kept the below-threshold match")
		}
	}
}
