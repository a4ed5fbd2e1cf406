// Package testutil provides fixture factories shared by the package tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/guarzo/ebaypulse/internal/model"
)

// ListingFactory generates deterministic raw listings and signals for tests.
type ListingFactory struct {
	rand *rand.Rand
	seq  int
}

// NewListingFactory seeds a factory. The same seed always yields the same
// sequence.
func NewListingFactory(seed int64) *ListingFactory {
	return &ListingFactory{rand: rand.New(rand.NewSource(seed))}
}

// RawListing returns a well-formed Buy It Now raw record with a unique item
// id. Override fields on the result as needed.
func (f *ListingFactory) RawListing() model.RawListing {
	f.seq++
	price := float64(f.rand.Intn(91) + 5) // $5 - $95, whole dollars so sums stay exact
	watch := f.rand.Intn(40)
	return model.RawListing{
		ItemID:             fmt.Sprintf("2%011d", f.seq),
		Title:              fmt.Sprintf("Test Widget %d", f.seq),
		Price:              &price,
		Currency:           "USD",
		Condition:          "New",
		ListingType:        "FixedPrice",
		WatchCount:         &watch,
		SellerName:         fmt.Sprintf("seller_%d", f.rand.Intn(8)),
		FeedbackScore:      f.rand.Intn(5000),
		FeedbackPercentage: 94 + f.rand.Float64()*6,
		FreeShipping:       f.rand.Intn(2) == 0,
		CategoryID:         fmt.Sprintf("cat%d", f.rand.Intn(4)),
	}
}

// RawBatch returns n well-formed raw listings.
func (f *ListingFactory) RawBatch(n int) []model.RawListing {
	batch := make([]model.RawListing, n)
	for i := range batch {
		batch[i] = f.RawListing()
	}
	return batch
}

// Signal returns a canonical listing signal without going through the
// normalizer, for tests that target the estimators directly.
func (f *ListingFactory) Signal() model.ListingSignal {
	f.seq++
	watch := f.rand.Intn(40)
	return model.ListingSignal{
		ItemID:      fmt.Sprintf("3%011d", f.seq),
		Price:       float64(f.rand.Intn(91) + 5),
		Condition:   model.ConditionNew,
		ListingType: model.ListingBuyItNow,
		WatchCount:  &watch,
		Seller: model.SellerProfile{
			Name:               fmt.Sprintf("seller_%d", f.rand.Intn(8)),
			FeedbackScore:      f.rand.Intn(5000),
			FeedbackPercentage: 94 + f.rand.Float64()*6,
		},
	}
}

// IntPtr is a convenience for building optional counts in table tests.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr is a convenience for building optional prices in table tests.
func FloatPtr(v float64) *float64 {
	return &v
}
