package market

import "fmt"

// Recommend maps a market report to a qualitative dropshipping call through
// an explicit decision table over estimated volume and competition. It only
// reads prepared aggregate fields, so every branch can be exercised by
// constructing a report with known values.
func Recommend(report *MarketReport, t Thresholds) *Recommendation {
	rec := &Recommendation{
		OpportunityLevel: opportunityLevel(report, t),
	}
	rec.EntryStrategy = entryStrategy(rec.OpportunityLevel)
	rec.RiskFactors = riskFactors(report, t)
	rec.SuccessFactors = successFactors(report, t)
	return rec
}

func opportunityLevel(r *MarketReport, t Thresholds) string {
	volume := r.EstimatedTotalSold
	sellers := r.Sellers.DistinctSellers

	switch {
	case volume >= t.ExcellentVolume && sellers > 0 && sellers <= t.ExcellentMaxSellers:
		return OpportunityExcellent
	case volume >= t.GoodVolume && sellers <= t.GoodMaxSellers:
		return OpportunityGood
	case volume >= t.FairVolume:
		return OpportunityFair
	default:
		return OpportunityLow
	}
}

func entryStrategy(level string) string {
	switch level {
	case OpportunityExcellent:
		return "Enter aggressively: proven demand with few competitors. List at market average and scale inventory quickly."
	case OpportunityGood:
		return "Enter with a differentiated listing: undercut the average price slightly or bundle free shipping."
	case OpportunityFair:
		return "Test with a small inventory commitment before scaling; demand exists but margins need validation."
	default:
		return "Avoid or monitor only: demand signals are too weak to justify inventory risk."
	}
}

func riskFactors(r *MarketReport, t Thresholds) []string {
	var risks []string

	if r.Sellers.TopSellerShare > t.ConcentrationRiskShare && r.Sellers.DistinctSellers > t.ConcentrationTop {
		risks = append(risks, fmt.Sprintf("top %d sellers hold %.0f%% of listings; established competition",
			r.Sellers.ConcentrationTop, r.Sellers.TopSellerShare*100))
	}
	if r.TotalListings > 0 && r.Sellers.DistinctSellers > t.GoodMaxSellers {
		risks = append(risks, fmt.Sprintf("%d competing sellers; crowded market", r.Sellers.DistinctSellers))
	}
	if r.TotalListings > 0 && r.Pricing.InBandCount == 0 {
		risks = append(risks, fmt.Sprintf("no listings priced inside the $%.0f-$%.0f dropshipping band",
			t.BandMinPrice, t.BandMaxPrice))
	}
	if r.TotalListings > 0 && r.Demand.LowCount == r.TotalListings {
		risks = append(risks, "every listing sits in the low-demand bucket; watcher interest is minimal")
	}

	return risks
}

func successFactors(r *MarketReport, t Thresholds) []string {
	var factors []string

	if r.Demand.HighCount > 0 {
		factors = append(factors, fmt.Sprintf("%d listings show high watcher demand (avg %.0f watchers)",
			r.Demand.HighCount, r.Demand.HighAvgWatchers))
	}
	if r.TotalListings > 0 && r.Pricing.InBandCount*2 >= r.TotalListings {
		factors = append(factors, fmt.Sprintf("%d of %d listings priced inside the profitable band",
			r.Pricing.InBandCount, r.TotalListings))
	}
	if r.Sellers.TopRatedShare >= 0.5 {
		factors = append(factors, "buyer trust is established; top-rated sellers dominate the niche")
	}
	if r.EstimatedTotalSold >= t.GoodVolume {
		factors = append(factors, fmt.Sprintf("estimated %d sales across the batch over 90 days", r.EstimatedTotalSold))
	}

	return factors
}
