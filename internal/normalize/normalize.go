// Package normalize converts raw marketplace records into the canonical
// ListingSignal shape. It is the single validation boundary: after a record
// passes through Normalize, the rest of the engine never re-checks fields.
package normalize

import (
	"fmt"
	"strings"

	"github.com/guarzo/ebaypulse/internal/model"
)

// MalformedListingError reports a raw record missing a required field. The
// caller should drop or repair the record; batch callers skip it and continue.
type MalformedListingError struct {
	ItemID string
	Field  string
	Reason string
}

func (e *MalformedListingError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("malformed listing: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed listing %s: %s %s", e.ItemID, e.Field, e.Reason)
}

// Normalize validates a raw listing and maps it onto the canonical record.
// Required: item id and a positive price. Everything else defaults
// conservatively: absent watch count stays absent, bid count 0, feedback 0,
// unknown condition buckets to UNKNOWN, unknown listing type to Buy It Now.
func Normalize(raw model.RawListing) (model.ListingSignal, error) {
	if strings.TrimSpace(raw.ItemID) == "" {
		return model.ListingSignal{}, &MalformedListingError{Field: "item_id", Reason: "is required"}
	}
	if raw.Price == nil {
		return model.ListingSignal{}, &MalformedListingError{ItemID: raw.ItemID, Field: "price", Reason: "is required"}
	}
	if *raw.Price <= 0 {
		return model.ListingSignal{}, &MalformedListingError{ItemID: raw.ItemID, Field: "price", Reason: "must be positive"}
	}

	sig := model.ListingSignal{
		ItemID:       strings.TrimSpace(raw.ItemID),
		Title:        strings.TrimSpace(raw.Title),
		Price:        *raw.Price,
		Condition:    mapCondition(raw.Condition),
		ListingType:  mapListingType(raw.ListingType),
		BidCount:     raw.BidCount,
		FreeShipping: raw.FreeShipping,
		CategoryID:   raw.CategoryID,
		Seller: model.SellerProfile{
			Name:               raw.SellerName,
			FeedbackScore:      raw.FeedbackScore,
			FeedbackPercentage: clampPercentage(raw.FeedbackPercentage),
			TopRated:           raw.TopRatedSeller,
			Business:           raw.BusinessSeller,
		},
	}

	if sig.Seller.FeedbackScore < 0 {
		sig.Seller.FeedbackScore = 0
	}
	if sig.BidCount < 0 || sig.ListingType != model.ListingAuction {
		// Bid count is only meaningful on auctions.
		sig.BidCount = 0
	}
	if raw.WatchCount != nil && *raw.WatchCount >= 0 {
		w := *raw.WatchCount
		sig.WatchCount = &w
	}

	return sig, nil
}

func clampPercentage(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// mapCondition buckets the many source condition names eBay uses into the
// canonical enumeration. Unrecognized names fall back to UNKNOWN, which the
// estimators treat like USED.
func mapCondition(raw string) model.Condition {
	c := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case c == "":
		return model.ConditionUnknown
	case strings.Contains(c, "new"):
		return model.ConditionNew
	case strings.Contains(c, "certified"):
		return model.ConditionCertifiedRefurb
	case strings.Contains(c, "refurbished"):
		return model.ConditionSellerRefurb
	case strings.Contains(c, "parts") || strings.Contains(c, "not working"):
		return model.ConditionForParts
	case strings.Contains(c, "used") || strings.Contains(c, "pre-owned") || strings.Contains(c, "open box"):
		return model.ConditionUsed
	default:
		return model.ConditionUnknown
	}
}

func mapListingType(raw string) model.ListingType {
	t := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(t, "auction") || strings.Contains(t, "chinese") {
		return model.ListingAuction
	}
	// FixedPrice, StoreInventory, and anything unrecognized count as Buy It Now.
	return model.ListingBuyItNow
}
