// Package usgs retrieves gauge readings from the USGS water services API.
package usgs

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/openpaddle/paddle-planner/internal/entities"
)

// USGS instantaneous-values parameter codes.
const (
	paramGageHeight = "00065"
	paramDischarge  = "00060"
)

// Client fetches readings from the USGS instantaneous-values service and site
// metadata from the NWIS inventory pages.
type Client struct {
	baseURL      string
	inventoryURL string
	httpClient   *http.Client
}

// NewClient creates a USGS client. Empty URLs select the production services.
func NewClient(baseURL, inventoryURL string) *Client {
	if baseURL == "" {
		baseURL = "https://waterservices.usgs.gov/nwis/iv/"
	}
	if inventoryURL == "" {
		inventoryURL = "https://waterdata.usgs.gov/nwis/inventory"
	}
	return &Client{
		baseURL:      baseURL,
		inventoryURL: inventoryURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NormalizeSiteID zero-pads a site ID to the 8-character USGS format.
func NormalizeSiteID(siteID string) string {
	for len(siteID) < 8 {
		siteID = "0" + siteID
	}
	return siteID
}

// ivPoint is a single timestamped measurement in the IV response.
type ivPoint struct {
	Value    string `json:"value"`
	DateTime string `json:"dateTime"`
}

// ivResponse mirrors the parts of the instantaneous-values JSON we consume.
type ivResponse struct {
	Value struct {
		TimeSeries []struct {
			Values []struct {
				Value []ivPoint `json:"value"`
			} `json:"values"`
		} `json:"timeSeries"`
	} `json:"value"`
}

// LatestReading returns the most recent measurement for a site, or nil when
// the site reported no data over the last day.
func (c *Client) LatestReading(siteID string, metric entities.Metric) (*entities.GaugeReading, error) {
	siteID = NormalizeSiteID(siteID)

	param := paramGageHeight
	if metric == entities.MetricCFS {
		param = paramDischarge
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("sites", siteID)
	params.Set("parameterCd", param)
	params.Set("period", "P1D")

	requestURL := c.baseURL + "?" + params.Encode()
	log.Printf("Fetching latest %s reading for site %s", metric, siteID)

	res, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gauge data for site %s: %v", siteID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code for site %s: %d %s", siteID, res.StatusCode, res.Status)
	}

	var payload ivResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode gauge response for site %s: %v", siteID, err)
	}

	latest := latestValue(payload)
	if latest == nil {
		log.Printf("Site %s returned no %s data", siteID, metric)
		return nil, nil
	}

	value, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable gauge value %q for site %s: %v", latest.Value, siteID, err)
	}

	timestamp, err := time.Parse(time.RFC3339, latest.DateTime)
	if err != nil {
		// Some sites report offsets without a colon; fall back to a lenient parse.
		timestamp, err = time.Parse("2006-01-02T15:04:05.000-07:00", latest.DateTime)
		if err != nil {
			return nil, fmt.Errorf("unparseable gauge timestamp %q for site %s: %v", latest.DateTime, siteID, err)
		}
	}

	return &entities.GaugeReading{
		SiteID:    siteID,
		Value:     value,
		Timestamp: timestamp,
		Metric:    metric,
	}, nil
}

func latestValue(payload ivResponse) *ivPoint {
	for _, series := range payload.Value.TimeSeries {
		for _, values := range series.Values {
			if n := len(values.Value); n > 0 {
				v := values.Value[n-1]
				return &v
			}
		}
	}
	return nil
}

// SiteName scrapes the station name from the NWIS inventory page for a site.
// The page titles stations as "USGS <id> <name>".
func (c *Client) SiteName(siteID string) (string, error) {
	siteID = NormalizeSiteID(siteID)

	params := url.Values{}
	params.Set("site_no", siteID)

	res, err := c.httpClient.Get(c.inventoryURL + "?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to fetch inventory page for site %s: %v", siteID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code for site %s inventory: %d %s", siteID, res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse inventory page for site %s: %v", siteID, err)
	}

	name := ""
	doc.Find("h2").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, siteID) {
			name = strings.TrimSpace(strings.TrimPrefix(text, "USGS "+siteID))
			return false
		}
		return true
	})

	if name == "" {
		return "", fmt.Errorf("station name not found on inventory page for site %s", siteID)
	}
	return name, nil
}
