package estimate

import (
	"reflect"
	"testing"

	"github.com/guarzo/ebaypulse/internal/model"
	"github.com/guarzo/ebaypulse/internal/testutil"
)

func TestSoldCount_ReferenceListing(t *testing.T) {
	// The documented worked example: a well-watched impulse-priced Buy It Now
	// from a trusted seller lands near 10 estimated sales.
	sig := model.ListingSignal{
		ItemID:      "301234567890",
		Price:       18.99,
		Condition:   model.ConditionNew,
		ListingType: model.ListingBuyItNow,
		WatchCount:  testutil.IntPtr(25),
		Seller: model.SellerProfile{
			FeedbackScore:      2847,
			FeedbackPercentage: 99,
		},
	}

	est := SoldCount(sig, DefaultWeights())

	if est.EstimatedSoldCount != 10 {
		t.Errorf("EstimatedSoldCount = %d, want 10", est.EstimatedSoldCount)
	}
	if est.EstimatedSoldCount < 6 || est.EstimatedSoldCount > 15 {
		t.Errorf("EstimatedSoldCount = %d, want within plausible range [6, 15]", est.EstimatedSoldCount)
	}
	if est.Confidence != model.ConfidenceHigh {
		t.Errorf("Confidence = %v, want HIGH", est.Confidence)
	}
	if !est.WatchObserved {
		t.Error("WatchObserved = false, want true")
	}
	if est.WatchCountUsed != 25 {
		t.Errorf("WatchCountUsed = %d, want 25", est.WatchCountUsed)
	}
}

func TestSoldCount_ColdListing(t *testing.T) {
	// No watch count, luxury price, junk condition, unproven seller.
	sig := model.ListingSignal{
		ItemID:      "301234567891",
		Price:       500,
		Condition:   model.ConditionForParts,
		ListingType: model.ListingBuyItNow,
		Seller:      model.SellerProfile{FeedbackScore: 0},
	}

	est := SoldCount(sig, DefaultWeights())

	if est.EstimatedSoldCount > 1 {
		t.Errorf("EstimatedSoldCount = %d, want a low estimate", est.EstimatedSoldCount)
	}
	if est.Confidence != model.ConfidenceLow {
		t.Errorf("Confidence = %v, want LOW", est.Confidence)
	}
	if est.WatchObserved {
		t.Error("WatchObserved = true, want false (backfilled)")
	}
}

func TestSoldCount_AllZeroSignals(t *testing.T) {
	sig := model.ListingSignal{
		ItemID:      "301234567892",
		Price:       999,
		Condition:   model.ConditionForParts,
		ListingType: model.ListingAuction,
		WatchCount:  testutil.IntPtr(0),
		Seller:      model.SellerProfile{},
	}

	est := SoldCount(sig, DefaultWeights())

	if est.EstimatedSoldCount != 0 {
		t.Errorf("EstimatedSoldCount = %d, want 0", est.EstimatedSoldCount)
	}
	// Watch count observed (as zero) still counts as one real signal.
	if est.Confidence == model.ConfidenceHigh {
		t.Errorf("Confidence = %v, want MEDIUM or LOW", est.Confidence)
	}
}

func TestSoldCount_WatchMonotonicity(t *testing.T) {
	w := DefaultWeights()

	prev := -1
	for watch := 0; watch <= 200; watch += 5 {
		sig := model.ListingSignal{
			ItemID:      "301234567893",
			Price:       18.99,
			Condition:   model.ConditionNew,
			ListingType: model.ListingBuyItNow,
			WatchCount:  testutil.IntPtr(watch),
			Seller:      model.SellerProfile{FeedbackScore: 2847, FeedbackPercentage: 99},
		}
		got := SoldCount(sig, w).EstimatedSoldCount
		if got < prev {
			t.Fatalf("estimate decreased from %d to %d at watch_count=%d", prev, got, watch)
		}
		prev = got
	}
}

func TestSoldCount_BidsOutweighWatchers(t *testing.T) {
	w := DefaultWeights()

	base := model.ListingSignal{
		ItemID:      "301234567894",
		Price:       50,
		Condition:   model.ConditionUsed,
		ListingType: model.ListingAuction,
		WatchCount:  testutil.IntPtr(10),
		Seller:      model.SellerProfile{FeedbackScore: 50, FeedbackPercentage: 93},
	}

	noBids := SoldCount(base, w)

	withBids := base
	withBids.BidCount = 10
	bid := SoldCount(withBids, w)

	if bid.EstimatedSoldCount <= noBids.EstimatedSoldCount {
		t.Errorf("10 bids estimate = %d, want > bid-less estimate %d", bid.EstimatedSoldCount, noBids.EstimatedSoldCount)
	}

	// The per-bid rate must exceed the per-watcher rate.
	if w.KBid <= w.KWatch {
		t.Errorf("KBid = %v, want > KWatch = %v", w.KBid, w.KWatch)
	}
}

func TestSoldCount_ConfidenceTable(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name string
		sig  model.ListingSignal
		want model.Confidence
	}{
		{
			name: "Observed watch and substantial feedback",
			sig: model.ListingSignal{
				ItemID: "1", Price: 20, ListingType: model.ListingBuyItNow,
				WatchCount: testutil.IntPtr(5),
				Seller:     model.SellerProfile{FeedbackScore: 800, FeedbackPercentage: 99},
			},
			want: model.ConfidenceHigh,
		},
		{
			name: "Observed watch, thin feedback",
			sig: model.ListingSignal{
				ItemID: "2", Price: 20, ListingType: model.ListingBuyItNow,
				WatchCount: testutil.IntPtr(5),
				Seller:     model.SellerProfile{FeedbackScore: 12, FeedbackPercentage: 100},
			},
			want: model.ConfidenceMedium,
		},
		{
			name: "Bids only",
			sig: model.ListingSignal{
				ItemID: "3", Price: 20, ListingType: model.ListingAuction, BidCount: 4,
				Seller: model.SellerProfile{FeedbackScore: 12, FeedbackPercentage: 100},
			},
			want: model.ConfidenceMedium,
		},
		{
			name: "High feedback only",
			sig: model.ListingSignal{
				ItemID: "4", Price: 20, ListingType: model.ListingBuyItNow,
				Seller: model.SellerProfile{FeedbackScore: 5000, FeedbackPercentage: 99.8},
			},
			want: model.ConfidenceMedium,
		},
		{
			name: "No signals at all",
			sig: model.ListingSignal{
				ItemID: "5", Price: 20, ListingType: model.ListingBuyItNow,
				Seller: model.SellerProfile{FeedbackScore: 3, FeedbackPercentage: 0},
			},
			want: model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := SoldCount(tt.sig, w)
			if est.Confidence != tt.want {
				t.Errorf("Confidence = %v, want %v", est.Confidence, tt.want)
			}
		})
	}
}

func TestSoldCount_Deterministic(t *testing.T) {
	sig := model.ListingSignal{
		ItemID:      "301234567895",
		Price:       18.99,
		Condition:   model.ConditionNew,
		ListingType: model.ListingBuyItNow,
		WatchCount:  testutil.IntPtr(25),
		Seller:      model.SellerProfile{FeedbackScore: 2847, FeedbackPercentage: 99},
	}
	w := DefaultWeights()

	a := SoldCount(sig, w)
	b := SoldCount(sig, w)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("SoldCount() not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestSoldCount_FactorsRecorded(t *testing.T) {
	w := DefaultWeights()

	sig := model.ListingSignal{
		ItemID:      "301234567896",
		Price:       18.99,
		Condition:   model.ConditionNew,
		ListingType: model.ListingBuyItNow,
		WatchCount:  testutil.IntPtr(25),
		Seller:      model.SellerProfile{FeedbackScore: 2847, FeedbackPercentage: 99},
	}

	est := SoldCount(sig, w)

	wantNames := []string{FactorWatchConversion, FactorSellerTrust, FactorListingType, FactorPricePsychology}
	if len(est.Factors) != len(wantNames) {
		t.Fatalf("len(Factors) = %d, want %d", len(est.Factors), len(wantNames))
	}
	for i, f := range est.Factors {
		if f.Name != wantNames[i] {
			t.Errorf("Factors[%d].Name = %q, want %q", i, f.Name, wantNames[i])
		}
	}

	auction := sig
	auction.ListingType = model.ListingAuction
	auction.BidCount = 3
	est = SoldCount(auction, w)
	if est.Factors[0].Name != FactorBidWeight || est.Factors[1].Name != FactorWatchWeight {
		t.Errorf("auction factors = %v, want bid_weight then watch_weight first", est.Factors)
	}
}

func TestSoldCount_NonNegativeOverFactoryInputs(t *testing.T) {
	w := DefaultWeights()
	factory := testutil.NewListingFactory(42)

	for i := 0; i < 500; i++ {
		sig := factory.Signal()
		if est := SoldCount(sig, w); est.EstimatedSoldCount < 0 {
			t.Fatalf("EstimatedSoldCount = %d for %+v, want >= 0", est.EstimatedSoldCount, sig)
		}
	}
}
