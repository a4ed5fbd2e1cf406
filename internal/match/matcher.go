// Package match pairs marketplace listings with supplier catalog products for
// dropshipping arbitrage: fuzzy title matching plus a profit-margin gate. It
// is pure; both batches arrive already fetched.
package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/guarzo/ebaypulse/internal/model"
)

// SupplierProduct is a candidate source product from another marketplace.
type SupplierProduct struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	URL   string  `json:"url,omitempty"`
}

// ProductMatch pairs a listing with its best supplier candidate. Similarity is
// the blended title score in [0,1]; ProfitMargin is the markup percentage of
// the listing price over the supplier price.
type ProductMatch struct {
	Listing         model.ListingSignal `json:"listing"`
	Supplier        SupplierProduct     `json:"supplier"`
	Similarity      float64             `json:"similarity"`
	ProfitMargin    float64             `json:"profit_margin_percent"`
	PriceDifference float64             `json:"price_difference"`
}

// Thresholds gate which candidate pairs count as matches.
type Thresholds struct {
	MinSimilarity   float64 // minimum blended title similarity, 0..1
	MinProfitMargin float64 // minimum markup percentage
}

// DefaultThresholds returns the documented default cut points: titles must
// share a clear majority of their words and the listing must sell for at
// least 1.5x the supplier price.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSimilarity:   0.4,
		MinProfitMargin: 50,
	}
}

// Blend weights for the two similarity signals. Word overlap matters more
// than character order for product titles.
const (
	charSimilarityWeight = 0.4
	wordSimilarityWeight = 0.6
)

// noiseTerms are marketplace boilerplate phrases stripped before comparing
// titles; they describe the listing, not the product.
var noiseTerms = regexp.MustCompile(`(?i)\b(brand new|free shipping|fast delivery|ships free|new with tags|nwt|nib|new in box)\b`)

// Match pairs each listing with its most similar supplier product that clears
// both thresholds. At most one match per listing; unprofitable candidates
// never win regardless of similarity. Results are sorted by similarity,
// best first.
func Match(listings []model.ListingSignal, supply []SupplierProduct, t Thresholds) []ProductMatch {
	var matches []ProductMatch

	for _, listing := range listings {
		var best *ProductMatch
		for _, supplier := range supply {
			sim := TitleSimilarity(listing.Title, supplier.Title)
			if sim < t.MinSimilarity {
				continue
			}
			margin := ProfitMargin(listing.Price, supplier.Price)
			if margin < t.MinProfitMargin {
				continue
			}
			if best == nil || sim > best.Similarity {
				best = &ProductMatch{
					Listing:         listing,
					Supplier:        supplier,
					Similarity:      sim,
					ProfitMargin:    margin,
					PriceDifference: listing.Price - supplier.Price,
				}
			}
		}
		if best != nil {
			matches = append(matches, *best)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// FilterProfitable keeps only matches at or above the margin threshold. Match
// already applies the gate; this re-screens matches held over after a
// threshold change.
func FilterProfitable(matches []ProductMatch, t Thresholds) []ProductMatch {
	var kept []ProductMatch
	for _, m := range matches {
		if m.ProfitMargin >= t.MinProfitMargin {
			kept = append(kept, m)
		}
	}
	return kept
}

// TitleSimilarity scores two product titles in [0,1]: a character-level edit
// similarity blended with word-set overlap, after stripping marketplace noise
// phrases. Identical cleaned titles score 1.
func TitleSimilarity(a, b string) float64 {
	ca := cleanTitle(a)
	cb := cleanTitle(b)
	if ca == "" || cb == "" {
		return 0
	}

	maxLen := len(ca)
	if len(cb) > maxLen {
		maxLen = len(cb)
	}
	charSim := 1 - float64(levenshtein(ca, cb))/float64(maxLen)

	wordsA := wordSet(ca)
	wordsB := wordSet(cb)
	shared := 0
	for w := range wordsA {
		if wordsB[w] {
			shared++
		}
	}
	union := len(wordsA) + len(wordsB) - shared
	wordSim := float64(shared) / float64(union)

	return charSim*charSimilarityWeight + wordSim*wordSimilarityWeight
}

// ProfitMargin is the markup percentage of the sell price over the buy price.
// A non-positive buy price yields 0 rather than a division blowup.
func ProfitMargin(sellPrice, buyPrice float64) float64 {
	if buyPrice <= 0 {
		return 0
	}
	return (sellPrice - buyPrice) / buyPrice * 100
}

func cleanTitle(title string) string {
	title = noiseTerms.ReplaceAllString(title, " ")
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
