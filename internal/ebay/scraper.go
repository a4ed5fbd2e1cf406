package ebay

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/guarzo/ebaypulse/internal/model"
)

// Scraper extracts raw listings from an eBay search-results page. It only
// parses; fetching the document (and everything around bot evasion) belongs
// to the caller.
type Scraper struct{}

func NewScraper() *Scraper {
	return &Scraper{}
}

var (
	itemIDPattern = regexp.MustCompile(`/itm/(?:[^/]*/)?(\d{9,12})`)
	pricePattern  = regexp.MustCompile(`[\d,]+\.?\d*`)
	countPattern  = regexp.MustCompile(`([\d,]+)\+?\s*(?:bid|watcher|sold)`)
	feedbackParen = regexp.MustCompile(`\(([\d,]+)\)`)
	feedbackPct   = regexp.MustCompile(`([\d.]+)%`)
)

// ParseSearchResults reads a search-results HTML document and returns one raw
// listing per result card. Cards missing an item id or price are skipped; the
// normalizer would reject them anyway.
func (s *Scraper) ParseSearchResults(r io.Reader) ([]model.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var listings []model.RawListing
	doc.Find("li.s-item, div.s-item").Each(func(_ int, card *goquery.Selection) {
		raw, ok := s.parseCard(card)
		if ok {
			listings = append(listings, raw)
		}
	})

	return listings, nil
}

func (s *Scraper) parseCard(card *goquery.Selection) (model.RawListing, bool) {
	raw := model.RawListing{}

	href, _ := card.Find("a.s-item__link").Attr("href")
	if m := itemIDPattern.FindStringSubmatch(href); m != nil {
		raw.ItemID = m[1]
		raw.ItemURL = href
	}

	raw.Title = cleanText(card.Find(".s-item__title").First().Text())
	// eBay pads result pages with a hidden placeholder card.
	if raw.ItemID == "" || strings.EqualFold(raw.Title, "Shop on eBay") {
		return raw, false
	}

	if price, ok := parsePrice(card.Find(".s-item__price").First().Text()); ok {
		raw.Price = &price
	}
	if raw.Price == nil {
		return raw, false
	}

	raw.Condition = cleanText(card.Find(".s-item__subtitle .SECONDARY_INFO").First().Text())
	if raw.Condition == "" {
		raw.Condition = cleanText(card.Find(".SECONDARY_INFO").First().Text())
	}

	if bids, ok := parseCount(card.Find(".s-item__bids, .s-item__bidCount").First().Text()); ok {
		raw.BidCount = bids
		raw.ListingType = "Auction"
	} else {
		raw.ListingType = "FixedPrice"
	}

	// The hotness line carries either watcher or sold counts; only watcher
	// text feeds the watch count.
	hotness := strings.ToLower(card.Find(".s-item__hotness, .s-item__watchheart, .s-item__watchCountTotal").Text())
	if strings.Contains(hotness, "watcher") {
		if watch, ok := parseCount(hotness); ok {
			raw.WatchCount = &watch
		}
	}

	shipping := strings.ToLower(card.Find(".s-item__shipping, .s-item__logisticsCost").First().Text())
	raw.FreeShipping = strings.Contains(shipping, "free")

	parseSellerInfo(cleanText(card.Find(".s-item__seller-info-text, .s-item__seller").First().Text()), &raw)

	return raw, true
}

// parseSellerInfo splits the "sellername (2,847) 99.1%" line eBay renders
// under each card.
func parseSellerInfo(text string, raw *model.RawListing) {
	if text == "" {
		return
	}
	if idx := strings.Index(text, "("); idx > 0 {
		raw.SellerName = strings.TrimSpace(text[:idx])
	}
	if m := feedbackParen.FindStringSubmatch(text); m != nil {
		if score, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			raw.FeedbackScore = score
		}
	}
	if m := feedbackPct.FindStringSubmatch(text); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			raw.FeedbackPercentage = pct
		}
	}
}

func parsePrice(text string) (float64, bool) {
	m := pricePattern.FindString(text)
	if m == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

func parseCount(text string) (int, bool) {
	m := countPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
