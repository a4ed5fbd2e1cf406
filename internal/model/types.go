package model

// Condition is the canonical item condition bucket.
type Condition string

const (
	ConditionNew             Condition = "NEW"
	ConditionCertifiedRefurb Condition = "CERTIFIED_REFURBISHED"
	ConditionSellerRefurb    Condition = "SELLER_REFURBISHED"
	ConditionUsed            Condition = "USED"
	ConditionForParts        Condition = "FOR_PARTS"
	ConditionUnknown         Condition = "UNKNOWN"
)

// ListingType distinguishes fixed-price listings from auctions.
type ListingType string

const (
	ListingBuyItNow ListingType = "BUY_IT_NOW"
	ListingAuction  ListingType = "AUCTION"
)

// Confidence is the qualitative reliability label attached to an estimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// RawListing is the loosely-shaped record produced by the eBay API client or
// the HTML scraper. Optional fields are pointers so "not reported" stays
// distinguishable from zero.
type RawListing struct {
	ItemID             string
	Title              string
	Price              *float64
	Currency           string
	Condition          string // source condition name, e.g. "New", "For parts or not working"
	ListingType        string // source listing type, e.g. "FixedPrice", "Auction"
	WatchCount         *int
	BidCount           int
	SellerName         string
	FeedbackScore      int
	FeedbackPercentage float64
	TopRatedSeller     bool
	BusinessSeller     bool
	FreeShipping       bool
	CategoryID         string
	ItemURL            string
}

// SellerProfile carries the seller trust signals used by the estimators.
type SellerProfile struct {
	Name               string  `json:"name"`
	FeedbackScore      int     `json:"feedback_score"`
	FeedbackPercentage float64 `json:"feedback_percentage"`
	TopRated           bool    `json:"top_rated"`
	Business           bool    `json:"business"`
}

// ListingSignal is the canonical, validated listing record. Everything
// downstream of the normalizer works only with this shape.
type ListingSignal struct {
	ItemID       string        `json:"item_id"`
	Title        string        `json:"title,omitempty"`
	Price        float64       `json:"price"`
	Condition    Condition     `json:"condition"`
	ListingType  ListingType   `json:"listing_type"`
	WatchCount   *int          `json:"watch_count,omitempty"` // nil when the marketplace did not report it
	BidCount     int           `json:"bid_count"`
	Seller       SellerProfile `json:"seller"`
	FreeShipping bool          `json:"free_shipping"`
	CategoryID   string        `json:"category_id,omitempty"`
}

// WatchCountObserved reports whether the watch count came from the
// marketplace rather than being backfilled by the estimator.
func (s ListingSignal) WatchCountObserved() bool {
	return s.WatchCount != nil
}

// Factor records one multiplicative term applied while estimating, kept so
// callers can explain how an estimate was produced.
type Factor struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// SoldCountEstimate is the per-listing demand estimate over a trailing
// 90-day window. Always recomputed from a ListingSignal, never persisted by
// the engine itself.
type SoldCountEstimate struct {
	ItemID             string     `json:"item_id"`
	EstimatedSoldCount int        `json:"estimated_sold_count"`
	Confidence         Confidence `json:"confidence"`
	WatchCountUsed     int        `json:"watch_count_used"`
	WatchObserved      bool       `json:"watch_observed"`
	Factors            []Factor   `json:"contributing_factors"`
}

// ListingEstimate pairs a canonical listing with its demand estimate. The
// aggregators reduce over sequences of these.
type ListingEstimate struct {
	Signal   ListingSignal     `json:"signal"`
	Estimate SoldCountEstimate `json:"estimate"`
}
