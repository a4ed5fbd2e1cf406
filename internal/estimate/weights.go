// Package estimate derives demand figures eBay does not expose: an estimated
// watcher count for listings where the marketplace withheld it, and an
// estimated 90-day sold count with a qualitative confidence label.
package estimate

// Weights centralizes every tunable constant used by the estimators. Callers
// pass a Weights value in; there is no global mutable configuration. The
// defaults are heuristic conversion rates, not contracts -- tests override
// individual fields to exercise each factor in isolation.
type Weights struct {
	// Base conversion rates for the sold-count estimate.
	KBid             float64 // per-bid contribution on auctions with bids
	KWatch           float64 // per-watcher contribution on auctions with bids
	KWatchConversion float64 // watcher-to-buyer rate for Buy It Now / bid-less listings

	// Multiplicative adjustments to the sold-count base.
	BuyItNowBoost     float64 // fixed-price listings convert faster than auctions
	TrustedSellerMult float64 // applied above TrustedScore/TrustedPct
	KnownSellerMult   float64 // applied above KnownScore/KnownPct
	RiskySellerMult   float64 // applied below RiskyScore or RiskyPct
	ImpulsePriceMult  float64 // price below ImpulsePriceMax
	CheapPriceMult    float64 // price in [ImpulsePriceMax, CheapPriceMax)
	PremiumPriceMult  float64 // price in [PremiumPriceMin, LuxuryPriceMin)
	LuxuryPriceMult   float64 // price at or above LuxuryPriceMin

	// Seller trust tiers, shared by both estimators.
	TrustedScore int     // e.g. 1000 feedback
	TrustedPct   float64 // e.g. 98%
	KnownScore   int
	KnownPct     float64
	RiskyScore   int // below this the seller is effectively unproven
	RiskyPct     float64

	// Price band edges for the price-psychology adjustment.
	ImpulsePriceMax float64
	CheapPriceMax   float64
	PremiumPriceMin float64
	LuxuryPriceMin  float64

	// Watch-count backfill: base watcher rate per price band, then the same
	// trust tiers plus condition and shipping multipliers.
	WatchBaseBargain  float64 // price < WatchPriceLow
	WatchBaseLow      float64 // [WatchPriceLow, WatchPriceMid)
	WatchBaseMid      float64 // [WatchPriceMid, WatchPriceHigh)
	WatchBaseHigh     float64 // [WatchPriceHigh, WatchPriceTop) -- peak of the curve
	WatchBasePremium  float64 // [WatchPriceTop, LuxuryPriceMin)
	WatchBaseLuxury   float64 // at or above LuxuryPriceMin
	WatchPriceLow     float64
	WatchPriceMid     float64
	WatchPriceHigh    float64
	WatchPriceTop     float64
	ConditionNewMult  float64
	ConditionRefbMult float64
	ConditionUsedMult float64
	ConditionPartMult float64
	FreeShippingMult  float64
	WatchTrustedMult  float64
	WatchKnownMult    float64
	WatchRiskyMult    float64

	// Confidence decision table input: "substantial feedback" cutoff.
	ConfidenceFeedbackScore int
	ConfidenceFeedbackPct   float64
}

// DefaultWeights returns the documented default rule set. With these values
// the reference listing (25 watchers, $18.99 Buy It Now, new, 2847 feedback
// at 99%) estimates 10 sales at HIGH confidence.
func DefaultWeights() Weights {
	return Weights{
		KBid:             0.6,
		KWatch:           0.2,
		KWatchConversion: 0.2,

		BuyItNowBoost:     1.2,
		TrustedSellerMult: 1.3,
		KnownSellerMult:   1.1,
		RiskySellerMult:   0.7,
		ImpulsePriceMult:  1.4,
		CheapPriceMult:    1.3,
		PremiumPriceMult:  0.8,
		LuxuryPriceMult:   0.6,

		TrustedScore: 1000,
		TrustedPct:   98,
		KnownScore:   100,
		KnownPct:     95,
		RiskyScore:   10,
		RiskyPct:     90,

		ImpulsePriceMax: 10,
		CheapPriceMax:   25,
		PremiumPriceMin: 100,
		LuxuryPriceMin:  300,

		WatchBaseBargain: 2,
		WatchBaseLow:     4,
		WatchBaseMid:     6,
		WatchBaseHigh:    8,
		WatchBasePremium: 6,
		WatchBaseLuxury:  4,
		WatchPriceLow:    5,
		WatchPriceMid:    20,
		WatchPriceHigh:   50,
		WatchPriceTop:    100,

		ConditionNewMult:  1.2,
		ConditionRefbMult: 1.0,
		ConditionUsedMult: 0.8,
		ConditionPartMult: 0.5,
		FreeShippingMult:  1.15,
		WatchTrustedMult:  1.3,
		WatchKnownMult:    1.1,
		WatchRiskyMult:    0.6,

		ConfidenceFeedbackScore: 500,
		ConfidenceFeedbackPct:   95,
	}
}
