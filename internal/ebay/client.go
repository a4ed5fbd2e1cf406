// Package ebay fetches raw listing records from eBay, either through the
// Finding API or by parsing search-result HTML when no API credentials are
// configured. Both paths produce model.RawListing batches; normalization and
// estimation happen downstream.
package ebay

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"github.com/guarzo/ebaypulse/internal/model"
)

const findingEndpoint = "https://svcs.ebay.com/services/search/FindingService/v1"

// Client talks to the eBay Finding API.
type Client struct {
	appID       string
	marketplace string
	endpoint    string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewClient builds a Finding API client. An empty app ID yields a client
// whose Available() is false; callers fall back to the HTML scraper.
func NewClient(appID, marketplace string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		appID:       appID,
		marketplace: marketplace,
		endpoint:    findingEndpoint,
		httpClient:  &http.Client{Timeout: timeout},
		// Finding API allows 5000 calls/day; one per second keeps headroom.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (c *Client) Available() bool {
	return c.appID != ""
}

// findingResponse mirrors the Finding API's everything-is-an-array JSON.
type findingResponse struct {
	FindItemsByKeywordsResponse []struct {
		SearchResult []struct {
			Item []findingItem `json:"item"`
		} `json:"searchResult"`
	} `json:"findItemsByKeywordsResponse"`
}

type findingItem struct {
	ItemID          []string `json:"itemId"`
	Title           []string `json:"title"`
	ViewItemURL     []string `json:"viewItemURL"`
	PrimaryCategory []struct {
		CategoryID []string `json:"categoryId"`
	} `json:"primaryCategory"`
	Condition []struct {
		ConditionDisplayName []string `json:"conditionDisplayName"`
	} `json:"condition"`
	SellingStatus []struct {
		CurrentPrice []struct {
			Value      []string `json:"__value__"`
			CurrencyID []string `json:"@currencyId"`
		} `json:"currentPrice"`
		BidCount []string `json:"bidCount"`
	} `json:"sellingStatus"`
	ListingInfo []struct {
		ListingType []string `json:"listingType"`
		WatchCount  []string `json:"watchCount"`
	} `json:"listingInfo"`
	ShippingInfo []struct {
		ShippingServiceCost []struct {
			Value []string `json:"__value__"`
		} `json:"shippingServiceCost"`
		ShippingType []string `json:"shippingType"`
	} `json:"shippingInfo"`
	SellerInfo []struct {
		SellerUserName          []string `json:"sellerUserName"`
		FeedbackScore           []string `json:"feedbackScore"`
		PositiveFeedbackPercent []string `json:"positiveFeedbackPercent"`
		TopRatedSeller          []string `json:"topRatedSeller"`
	} `json:"sellerInfo"`
}

// SearchListings fetches up to max raw listings for a keyword.
func (c *Client) SearchListings(ctx context.Context, keyword string, max int) ([]model.RawListing, error) {
	if !c.Available() {
		return nil, fmt.Errorf("eBay app ID not configured")
	}
	if max <= 0 {
		max = 50
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("OPERATION-NAME", "findItemsByKeywords")
	params.Set("SERVICE-VERSION", "1.0.0")
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("GLOBAL-ID", globalID(c.marketplace))
	params.Set("keywords", keyword)
	params.Set("outputSelector(0)", "SellerInfo")
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(max))
	params.Set("sortOrder", "BestMatch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("X-EBAY-SOA-SERVICE-NAME", "FindingService")
	req.Header.Set("X-EBAY-SOA-OPERATION-NAME", "findItemsByKeywords")
	req.Header.Set("X-EBAY-SOA-SECURITY-APPNAME", c.appID)
	req.Header.Set("X-EBAY-SOA-RESPONSE-DATA-FORMAT", "JSON")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eBay API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if msg := findingErrorMessage(body); msg != "" {
			if strings.Contains(msg, "exceeded the number of times") {
				return nil, fmt.Errorf("eBay API rate limit exceeded")
			}
			return nil, fmt.Errorf("eBay API error: %s", msg)
		}
		return nil, fmt.Errorf("eBay API returned status %d", resp.StatusCode)
	}

	var parsed findingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse eBay response: %w", err)
	}

	var listings []model.RawListing
	if len(parsed.FindItemsByKeywordsResponse) > 0 &&
		len(parsed.FindItemsByKeywordsResponse[0].SearchResult) > 0 {
		for _, item := range parsed.FindItemsByKeywordsResponse[0].SearchResult[0].Item {
			listings = append(listings, rawFromFindingItem(item))
		}
	}

	if len(listings) > max {
		listings = listings[:max]
	}
	return listings, nil
}

// decodeBody handles the content encodings eBay serves.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func findingErrorMessage(body []byte) string {
	var errResp struct {
		ErrorMessage []struct {
			Error []struct {
				Message []string `json:"message"`
			} `json:"error"`
		} `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	if len(errResp.ErrorMessage) > 0 &&
		len(errResp.ErrorMessage[0].Error) > 0 &&
		len(errResp.ErrorMessage[0].Error[0].Message) > 0 {
		return errResp.ErrorMessage[0].Error[0].Message[0]
	}
	return ""
}

func rawFromFindingItem(item findingItem) model.RawListing {
	raw := model.RawListing{}

	if len(item.ItemID) > 0 {
		raw.ItemID = item.ItemID[0]
	}
	if len(item.Title) > 0 {
		raw.Title = item.Title[0]
	}
	if len(item.ViewItemURL) > 0 {
		raw.ItemURL = item.ViewItemURL[0]
	}
	if len(item.PrimaryCategory) > 0 && len(item.PrimaryCategory[0].CategoryID) > 0 {
		raw.CategoryID = item.PrimaryCategory[0].CategoryID[0]
	}
	if len(item.Condition) > 0 && len(item.Condition[0].ConditionDisplayName) > 0 {
		raw.Condition = item.Condition[0].ConditionDisplayName[0]
	}

	if len(item.SellingStatus) > 0 {
		status := item.SellingStatus[0]
		if len(status.CurrentPrice) > 0 && len(status.CurrentPrice[0].Value) > 0 {
			if price, err := strconv.ParseFloat(status.CurrentPrice[0].Value[0], 64); err == nil {
				raw.Price = &price
			}
			if len(status.CurrentPrice[0].CurrencyID) > 0 {
				raw.Currency = status.CurrentPrice[0].CurrencyID[0]
			}
		}
		if len(status.BidCount) > 0 {
			if bids, err := strconv.Atoi(status.BidCount[0]); err == nil {
				raw.BidCount = bids
			}
		}
	}

	if len(item.ListingInfo) > 0 {
		info := item.ListingInfo[0]
		if len(info.ListingType) > 0 {
			raw.ListingType = info.ListingType[0]
		}
		if len(info.WatchCount) > 0 {
			if watch, err := strconv.Atoi(info.WatchCount[0]); err == nil && watch >= 0 {
				raw.WatchCount = &watch
			}
		}
	}

	if len(item.ShippingInfo) > 0 {
		ship := item.ShippingInfo[0]
		if len(ship.ShippingServiceCost) > 0 && len(ship.ShippingServiceCost[0].Value) > 0 {
			if cost, err := strconv.ParseFloat(ship.ShippingServiceCost[0].Value[0], 64); err == nil {
				raw.FreeShipping = cost == 0
			}
		} else if len(ship.ShippingType) > 0 {
			raw.FreeShipping = strings.EqualFold(ship.ShippingType[0], "Free")
		}
	}

	if len(item.SellerInfo) > 0 {
		info := item.SellerInfo[0]
		if len(info.SellerUserName) > 0 {
			raw.SellerName = info.SellerUserName[0]
		}
		if len(info.FeedbackScore) > 0 {
			if score, err := strconv.Atoi(info.FeedbackScore[0]); err == nil {
				raw.FeedbackScore = score
			}
		}
		if len(info.PositiveFeedbackPercent) > 0 {
			if pct, err := strconv.ParseFloat(info.PositiveFeedbackPercent[0], 64); err == nil {
				raw.FeedbackPercentage = pct
			}
		}
		if len(info.TopRatedSeller) > 0 {
			raw.TopRatedSeller = info.TopRatedSeller[0] == "true"
		}
	}

	return raw
}

// globalID maps a marketplace domain to the Finding API GLOBAL-ID.
func globalID(marketplace string) string {
	switch marketplace {
	case "ebay.co.uk":
		return "EBAY-GB"
	case "ebay.de":
		return "EBAY-DE"
	case "ebay.fr":
		return "EBAY-FR"
	case "ebay.it":
		return "EBAY-IT"
	case "ebay.es":
		return "EBAY-ES"
	case "ebay.ca":
		return "EBAY-ENCA"
	case "ebay.com.au":
		return "EBAY-AU"
	default:
		return "EBAY-US"
	}
}
