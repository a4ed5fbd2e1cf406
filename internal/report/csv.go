// Package report exports market and seller analytics as CSV for the
// presentation layer's download endpoints.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/guarzo/ebaypulse/internal/insights"
	"github.com/guarzo/ebaypulse/internal/model"
)

var listingHeader = []string{
	"item_id", "title", "price", "condition", "listing_type",
	"watch_count", "watch_observed", "bid_count",
	"seller", "feedback_score", "feedback_pct",
	"estimated_sold", "confidence",
}

// WriteMarketCSV writes one row per listing estimate followed by a summary
// block, formula-escaped throughout.
func WriteMarketCSV(w io.Writer, m *insights.MarketInsights) error {
	cw := csv.NewWriter(w)

	if err := writeListingHeader(cw); err != nil {
		return err
	}

	for _, pair := range m.Listings {
		if err := cw.Write(EscapeCSVRow(listingRow(pair))); err != nil {
			return fmt.Errorf("write listing row: %w", err)
		}
	}

	summary := [][]string{
		{"", ""},
		{"total_listings", strconv.Itoa(m.Report.TotalListings)},
		{"estimated_total_sold", strconv.Itoa(m.Report.EstimatedTotalSold)},
		{"total_watchers", strconv.Itoa(m.Report.TotalWatchers)},
		{"distinct_sellers", strconv.Itoa(m.Report.Sellers.DistinctSellers)},
		{"average_price", formatPrice(m.Report.Pricing.AveragePrice)},
		{"opportunity_level", m.Recommendation.OpportunityLevel},
		{"skipped_records", strconv.Itoa(m.SkippedRecords)},
	}
	for _, row := range summary {
		if err := cw.Write(EscapeCSVRow(row)); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSellerCSV writes a seller's per-listing estimates plus the catalog
// summary.
func WriteSellerCSV(w io.Writer, a *insights.SellerAnalytics) error {
	cw := csv.NewWriter(w)

	if err := writeListingHeader(cw); err != nil {
		return err
	}
	for _, pair := range a.Listings {
		if err := cw.Write(EscapeCSVRow(listingRow(pair))); err != nil {
			return fmt.Errorf("write listing row: %w", err)
		}
	}

	summary := [][]string{
		{"", ""},
		{"seller", a.Report.SellerName},
		{"total_listings", strconv.Itoa(a.Report.TotalListings)},
		{"estimated_total_sold", strconv.Itoa(a.Report.EstimatedTotalSold)},
		{"engagement_rate", strconv.FormatFloat(a.Report.EngagementRate, 'f', 2, 64)},
		{"inventory_value", formatPrice(a.Report.InventoryValue)},
		{"category_breadth", strconv.Itoa(a.Report.CategoryBreadth)},
		{"market_position", a.Report.MarketPosition},
	}
	for _, row := range summary {
		if err := cw.Write(EscapeCSVRow(row)); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeListingHeader(cw *csv.Writer) error {
	header := make([]string, len(listingHeader))
	for i, h := range listingHeader {
		header[i] = sanitizeHeader(h)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func listingRow(pair model.ListingEstimate) []string {
	sig := pair.Signal
	est := pair.Estimate
	return []string{
		sig.ItemID,
		sig.Title,
		formatPrice(sig.Price),
		string(sig.Condition),
		string(sig.ListingType),
		strconv.Itoa(est.WatchCountUsed),
		strconv.FormatBool(est.WatchObserved),
		strconv.Itoa(sig.BidCount),
		sig.Seller.Name,
		strconv.Itoa(sig.Seller.FeedbackScore),
		strconv.FormatFloat(sig.Seller.FeedbackPercentage, 'f', 1, 64),
		strconv.Itoa(est.EstimatedSoldCount),
		string(est.Confidence),
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
