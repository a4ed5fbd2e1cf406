package estimate

import (
	"math"

	"github.com/guarzo/ebaypulse/internal/model"
)

// WatchCount backfills an estimated watcher count for a listing the
// marketplace reported without one. It never overrides a real value; callers
// use signal.WatchCount when present and only fall back to this.
//
// The estimate is a price-band base rate times independent condition, seller
// trust, and shipping multipliers. The terms are combined multiplicatively,
// so each can be validated in isolation by holding the others at their
// neutral values.
func WatchCount(sig model.ListingSignal, w Weights) int {
	base := watchBase(sig.Price, w)
	base *= conditionMult(sig.Condition, w)
	base *= watchTrustMult(sig.Seller, w)
	if sig.FreeShipping {
		base *= w.FreeShippingMult
	}
	return roundHalfUp(base)
}

// watchBase models watcher interest against price: interest grows through the
// normal retail band, peaks, then falls off for premium and luxury prices
// where fewer buyers window-shop.
func watchBase(price float64, w Weights) float64 {
	switch {
	case price < w.WatchPriceLow:
		return w.WatchBaseBargain
	case price < w.WatchPriceMid:
		return w.WatchBaseLow
	case price < w.WatchPriceHigh:
		return w.WatchBaseMid
	case price < w.WatchPriceTop:
		return w.WatchBaseHigh
	case price < w.LuxuryPriceMin:
		return w.WatchBasePremium
	default:
		return w.WatchBaseLuxury
	}
}

func conditionMult(c model.Condition, w Weights) float64 {
	switch c {
	case model.ConditionNew:
		return w.ConditionNewMult
	case model.ConditionCertifiedRefurb, model.ConditionSellerRefurb:
		return w.ConditionRefbMult
	case model.ConditionForParts:
		return w.ConditionPartMult
	default:
		// USED and UNKNOWN share the conservative bucket.
		return w.ConditionUsedMult
	}
}

// watchTrustMult saturates: once a seller clears the trusted tier, more
// feedback does not keep growing the estimate.
func watchTrustMult(s model.SellerProfile, w Weights) float64 {
	switch {
	case s.FeedbackScore >= w.TrustedScore && s.FeedbackPercentage >= w.TrustedPct:
		return w.WatchTrustedMult
	case s.FeedbackScore >= w.KnownScore && s.FeedbackPercentage >= w.KnownPct:
		return w.WatchKnownMult
	case s.FeedbackScore < w.RiskyScore || s.FeedbackPercentage < w.RiskyPct:
		return w.WatchRiskyMult
	default:
		return 1.0
	}
}

func roundHalfUp(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
