package market

// MarketReport aggregates per-listing demand estimates for one keyword-scoped
// batch into market-level statistics. Built fresh per query, never mutated
// after construction.
type MarketReport struct {
	Keyword            string             `json:"keyword,omitempty"`
	TotalListings      int                `json:"total_listings"`
	EstimatedTotalSold int                `json:"estimated_total_sold"` // 90-day volume across the batch
	TotalWatchers      int                `json:"total_watchers"`       // observed or backfilled
	Demand             DemandDistribution `json:"demand"`
	Pricing            PricingSummary     `json:"pricing"`
	Sellers            SellerLandscape    `json:"sellers"`
}

// DemandDistribution buckets listings by watcher count. Totals are kept
// alongside averages so partial reports combine without loss.
type DemandDistribution struct {
	HighCount           int     `json:"high_count"` // watchers >= high threshold
	MediumCount         int     `json:"medium_count"`
	LowCount            int     `json:"low_count"`
	HighWatchersTotal   int     `json:"high_watchers_total"`
	MediumWatchersTotal int     `json:"medium_watchers_total"`
	LowWatchersTotal    int     `json:"low_watchers_total"`
	HighAvgWatchers     float64 `json:"high_avg_watchers"`
	MediumAvgWatchers   float64 `json:"medium_avg_watchers"`
	LowAvgWatchers      float64 `json:"low_avg_watchers"`
}

// PricingSummary describes the price spread of the batch and how much of it
// sits inside the profitable dropshipping band.
type PricingSummary struct {
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	AveragePrice float64 `json:"average_price"`
	TotalValue   float64 `json:"total_value"`
	InBandCount  int     `json:"in_band_count"`
	BandMinPrice float64 `json:"band_min_price"`
	BandMaxPrice float64 `json:"band_max_price"`
}

// SellerLandscape summarizes who is competing in the market.
type SellerLandscape struct {
	DistinctSellers  int     `json:"distinct_sellers"`
	TopRatedCount    int     `json:"top_rated_count"`
	BusinessCount    int     `json:"business_count"`
	TopRatedShare    float64 `json:"top_rated_share"`   // fraction of listings, 0..1
	BusinessShare    float64 `json:"business_share"`
	TopSellerShare   float64 `json:"top_seller_share"`  // listings held by the top-N sellers, 0..1
	ConcentrationTop int     `json:"concentration_top"` // N used for TopSellerShare
}

// Recommendation maps aggregate statistics to a qualitative dropshipping
// call: how attractive the market is and how to enter it.
type Recommendation struct {
	OpportunityLevel string   `json:"opportunity_level"` // EXCELLENT, GOOD, FAIR, LOW
	EntryStrategy    string   `json:"entry_strategy"`
	RiskFactors      []string `json:"risk_factors"`
	SuccessFactors   []string `json:"success_factors"`
}

const (
	OpportunityExcellent = "EXCELLENT"
	OpportunityGood      = "GOOD"
	OpportunityFair      = "FAIR"
	OpportunityLow       = "LOW"
)

// Thresholds centralizes the cut points used by the aggregator and the
// recommendation engine, so both always agree on what "high demand" means.
type Thresholds struct {
	DemandHighWatchers   int // HIGH demand bucket: watchers >= this (default 20)
	DemandMediumWatchers int // MEDIUM bucket: watchers >= this (default 5)

	BandMinPrice float64 // profitable dropshipping band (default $15)
	BandMaxPrice float64 // default $100

	ExcellentVolume     int // 90-day volume for an EXCELLENT market
	ExcellentMaxSellers int
	GoodVolume          int
	GoodMaxSellers      int
	FairVolume          int

	ConcentrationTop       int     // top-N sellers measured for concentration
	ConcentrationRiskShare float64 // flag risk when top-N share exceeds this
}

// DefaultThresholds returns the documented default cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DemandHighWatchers:   20,
		DemandMediumWatchers: 5,

		BandMinPrice: 15,
		BandMaxPrice: 100,

		ExcellentVolume:     100,
		ExcellentMaxSellers: 10,
		GoodVolume:          50,
		GoodMaxSellers:      25,
		FairVolume:          20,

		ConcentrationTop:       3,
		ConcentrationRiskShare: 0.5,
	}
}
