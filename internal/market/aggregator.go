// Package market reduces per-listing demand estimates into market-level
// reports and turns those reports into dropshipping recommendations.
package market

import (
	"sort"

	"github.com/guarzo/ebaypulse/internal/model"
)

// Aggregate reduces a batch of listing estimates into one MarketReport. The
// reduction is a pure pass of sums, counts, and min/max, so it is invariant
// to input order and partial batches combine field-wise. An empty or nil
// batch yields a zero-valued report, never an error.
func Aggregate(keyword string, pairs []model.ListingEstimate, t Thresholds) *MarketReport {
	report := &MarketReport{
		Keyword: keyword,
		Pricing: PricingSummary{
			BandMinPrice: t.BandMinPrice,
			BandMaxPrice: t.BandMaxPrice,
		},
		Sellers: SellerLandscape{
			ConcentrationTop: t.ConcentrationTop,
		},
	}
	if len(pairs) == 0 {
		return report
	}

	sellerListings := make(map[string]int)
	var priceSum float64

	for _, p := range pairs {
		report.TotalListings++
		report.EstimatedTotalSold += p.Estimate.EstimatedSoldCount
		report.TotalWatchers += p.Estimate.WatchCountUsed

		bucketDemand(&report.Demand, p.Estimate.WatchCountUsed, t)

		price := p.Signal.Price
		priceSum += price
		if report.Pricing.MinPrice == 0 || price < report.Pricing.MinPrice {
			report.Pricing.MinPrice = price
		}
		if price > report.Pricing.MaxPrice {
			report.Pricing.MaxPrice = price
		}
		if price >= t.BandMinPrice && price <= t.BandMaxPrice {
			report.Pricing.InBandCount++
		}

		sellerListings[sellerKey(p.Signal)]++
		if p.Signal.Seller.TopRated {
			report.Sellers.TopRatedCount++
		}
		if p.Signal.Seller.Business {
			report.Sellers.BusinessCount++
		}
	}

	report.Pricing.TotalValue = priceSum
	report.Pricing.AveragePrice = priceSum / float64(report.TotalListings)

	finalizeDemand(&report.Demand)
	finalizeSellers(&report.Sellers, sellerListings, report.TotalListings, t)

	return report
}

func bucketDemand(d *DemandDistribution, watchers int, t Thresholds) {
	switch {
	case watchers >= t.DemandHighWatchers:
		d.HighCount++
		d.HighWatchersTotal += watchers
	case watchers >= t.DemandMediumWatchers:
		d.MediumCount++
		d.MediumWatchersTotal += watchers
	default:
		d.LowCount++
		d.LowWatchersTotal += watchers
	}
}

func finalizeDemand(d *DemandDistribution) {
	if d.HighCount > 0 {
		d.HighAvgWatchers = float64(d.HighWatchersTotal) / float64(d.HighCount)
	}
	if d.MediumCount > 0 {
		d.MediumAvgWatchers = float64(d.MediumWatchersTotal) / float64(d.MediumCount)
	}
	if d.LowCount > 0 {
		d.LowAvgWatchers = float64(d.LowWatchersTotal) / float64(d.LowCount)
	}
}

func finalizeSellers(s *SellerLandscape, listingsBySeller map[string]int, total int, t Thresholds) {
	s.DistinctSellers = len(listingsBySeller)
	if total == 0 {
		return
	}
	s.TopRatedShare = float64(s.TopRatedCount) / float64(total)
	s.BusinessShare = float64(s.BusinessCount) / float64(total)

	counts := make([]int, 0, len(listingsBySeller))
	for _, n := range listingsBySeller {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	topN := t.ConcentrationTop
	if topN > len(counts) {
		topN = len(counts)
	}
	var held int
	for _, n := range counts[:topN] {
		held += n
	}
	s.TopSellerShare = float64(held) / float64(total)
}

// sellerKey keeps anonymous listings from collapsing into one phantom seller.
func sellerKey(sig model.ListingSignal) string {
	if sig.Seller.Name != "" {
		return sig.Seller.Name
	}
	return "unknown:" + sig.ItemID
}
