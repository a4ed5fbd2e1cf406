package estimate

import (
	"github.com/guarzo/ebaypulse/internal/model"
)

// Factor names recorded on each estimate, in application order.
const (
	FactorBidWeight       = "bid_weight"
	FactorWatchWeight     = "watch_weight"
	FactorWatchConversion = "watch_conversion"
	FactorSellerTrust     = "seller_trust"
	FactorListingType     = "listing_type"
	FactorPricePsychology = "price_psychology"
)

// SoldCount estimates completed sales over a trailing 90-day window for one
// listing. It is a total function: any well-formed signal produces an
// estimate, and a listing with no signals at all yields 0 at LOW confidence.
//
// Base estimate: on auctions with bids, bids count more than watchers (a bid
// is declared purchase intent); otherwise a flat watcher-to-buyer conversion
// rate applies. Seller trust, listing type, and price psychology then adjust
// the base multiplicatively. Each applied term is recorded as a contributing
// factor.
func SoldCount(sig model.ListingSignal, w Weights) model.SoldCountEstimate {
	watch, observed := resolveWatchCount(sig, w)

	est := model.SoldCountEstimate{
		ItemID:         sig.ItemID,
		WatchCountUsed: watch,
		WatchObserved:  observed,
	}

	var base float64
	if sig.ListingType == model.ListingAuction && sig.BidCount > 0 {
		base = float64(sig.BidCount)*w.KBid + float64(watch)*w.KWatch
		est.Factors = append(est.Factors,
			model.Factor{Name: FactorBidWeight, Multiplier: w.KBid},
			model.Factor{Name: FactorWatchWeight, Multiplier: w.KWatch})
	} else {
		base = float64(watch) * w.KWatchConversion
		est.Factors = append(est.Factors,
			model.Factor{Name: FactorWatchConversion, Multiplier: w.KWatchConversion})
	}

	trust := sellerTrustMult(sig.Seller, w)
	base *= trust
	est.Factors = append(est.Factors, model.Factor{Name: FactorSellerTrust, Multiplier: trust})

	ltype := 1.0
	if sig.ListingType == model.ListingBuyItNow {
		ltype = w.BuyItNowBoost
	}
	base *= ltype
	est.Factors = append(est.Factors, model.Factor{Name: FactorListingType, Multiplier: ltype})

	price := pricePsychologyMult(sig.Price, w)
	base *= price
	est.Factors = append(est.Factors, model.Factor{Name: FactorPricePsychology, Multiplier: price})

	est.EstimatedSoldCount = roundHalfUp(base)
	est.Confidence = confidence(sig, observed, w)
	return est
}

func resolveWatchCount(sig model.ListingSignal, w Weights) (int, bool) {
	if sig.WatchCount != nil {
		return *sig.WatchCount, true
	}
	return WatchCount(sig, w), false
}

// sellerTrustMult mirrors the tiering used by the watch estimator: proven
// high-volume sellers convert watchers better, unproven or poorly rated
// sellers worse. Saturates at the trusted tier.
func sellerTrustMult(s model.SellerProfile, w Weights) float64 {
	switch {
	case s.FeedbackScore >= w.TrustedScore && s.FeedbackPercentage >= w.TrustedPct:
		return w.TrustedSellerMult
	case s.FeedbackScore >= w.KnownScore && s.FeedbackPercentage >= w.KnownPct:
		return w.KnownSellerMult
	case s.FeedbackScore < w.RiskyScore || s.FeedbackPercentage < w.RiskyPct:
		return w.RiskySellerMult
	default:
		return 1.0
	}
}

// pricePsychologyMult: impulse-band items turn watchers into buyers faster;
// premium and luxury prices lengthen consideration time.
func pricePsychologyMult(price float64, w Weights) float64 {
	switch {
	case price < w.ImpulsePriceMax:
		return w.ImpulsePriceMult
	case price < w.CheapPriceMax:
		return w.CheapPriceMult
	case price < w.PremiumPriceMin:
		return 1.0
	case price < w.LuxuryPriceMin:
		return w.PremiumPriceMult
	default:
		return w.LuxuryPriceMult
	}
}

// confidence is an explicit decision table, not a blended score:
//
//	HIGH   observed watch count AND substantial seller feedback
//	MEDIUM at least one strong signal (observed watch count, real bids,
//	       or substantial feedback)
//	LOW    everything else
func confidence(sig model.ListingSignal, watchObserved bool, w Weights) model.Confidence {
	substantialFeedback := sig.Seller.FeedbackScore >= w.ConfidenceFeedbackScore &&
		sig.Seller.FeedbackPercentage >= w.ConfidenceFeedbackPct

	switch {
	case watchObserved && substantialFeedback:
		return model.ConfidenceHigh
	case watchObserved || sig.BidCount > 0 || substantialFeedback:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
