package services

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fenilmodi00/award-scraper/config"
	"github.com/fenilmodi00/award-scraper/models"
	"github.com/fenilmodi00/award-scraper/shared"
)

// Search type discriminators understood by the itinerary endpoint
const (
	SearchTypeRevenue = "Revenue"
	SearchTypeAward   = "Award"
)

// SearchParams are the four scalar inputs of one itinerary search.
type SearchParams struct {
	Adults        int
	Origin        string
	Destination   string
	DepartureDate string
}

// BuildCashSearchRequest constructs the Revenue search body. The udo
// search_method hint and the "cfr" version are only sent on this variant.
func BuildCashSearchRequest(params SearchParams) *models.ItinerarySearchRequest {
	request := newItinerarySearchRequest(params, SearchTypeRevenue)
	request.Metadata.UDO = map[string]string{"search_method": "Lowest"}
	request.Version = "cfr"
	return request
}

// BuildAwardSearchRequest constructs the Award search body.
func BuildAwardSearchRequest(params SearchParams) *models.ItinerarySearchRequest {
	return newItinerarySearchRequest(params, SearchTypeAward)
}

func newItinerarySearchRequest(params SearchParams, searchType string) *models.ItinerarySearchRequest {
	return &models.ItinerarySearchRequest{
		Metadata: models.RequestMetadata{
			SelectedProducts: []string{},
			TripType:         "OneWay",
			UDO:              map[string]string{},
		},
		Passengers: []models.RequestPassenger{
			{Type: "adult", Count: params.Adults},
		},
		RequestHeader: models.RequestHeader{ClientID: "AAcom"},
		Slices: []models.RequestSlice{
			{
				AllCarriers:               true,
				Cabin:                     "",
				DepartureDate:             params.DepartureDate,
				Destination:               params.Destination,
				DestinationNearbyAirports: false,
				MaxStops:                  nil,
				Origin:                    params.Origin,
				OriginNearbyAirports:      false,
			},
		},
		TripOptions: models.TripOptions{
			CorporateBooking: false,
			FareType:         "Lowest",
			Locale:           "en_US",
			PointOfSale:      nil,
			SearchType:       searchType,
		},
		LoyaltyInfo: nil,
		Version:     "",
		QueryParams: models.QueryParams{
			SliceIndex:  0,
			SessionID:   "",
			SolutionSet: "",
			SolutionID:  "",
			Sort:        "CARRIER",
		},
	}
}

// ItinerarySearchClient fetches itinerary search payloads from the booking
// API through the shared retrying HTTP executor, with a politeness delay
// between consecutive searches.
type ItinerarySearchClient struct {
	httpClient       *http.Client
	apiURL           string
	siteOrigin       string
	maxRetryAttempts int
	rateLimiter      *shared.HTTPRequestRateLimiter
	metrics          *shared.RunMetrics
	logger           *logrus.Entry
}

// NewItinerarySearchClient creates a search client from the run config
func NewItinerarySearchClient(factory *shared.HTTPClientFactory, cfg *config.Config, metrics *shared.RunMetrics) *ItinerarySearchClient {
	return &ItinerarySearchClient{
		httpClient:       factory.CreateOptimizedHTTPClient(cfg.HTTPTimeout),
		apiURL:           cfg.BookingAPIURL,
		siteOrigin:       cfg.SiteOrigin,
		maxRetryAttempts: cfg.MaxRetryAttempts,
		rateLimiter:      shared.NewHTTPRequestRateLimiter(cfg.RequestDelay),
		metrics:          metrics,
		logger:           logrus.WithField("component", "ItinerarySearchClient"),
	}
}

// FetchCashPricing runs the Revenue itinerary search.
func (c *ItinerarySearchClient) FetchCashPricing(params SearchParams, cookies map[string]string) (*models.ItinerarySearchResponse, error) {
	return c.fetch(BuildCashSearchRequest(params), cookies, SearchTypeRevenue)
}

// FetchAwardPricing runs the Award itinerary search.
func (c *ItinerarySearchClient) FetchAwardPricing(params SearchParams, cookies map[string]string) (*models.ItinerarySearchResponse, error) {
	return c.fetch(BuildAwardSearchRequest(params), cookies, SearchTypeAward)
}

func (c *ItinerarySearchClient) fetch(request *models.ItinerarySearchRequest, cookies map[string]string, searchType string) (*models.ItinerarySearchResponse, error) {
	logger := c.logger.WithField("search_type", searchType)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProcessing, shared.CodeEmptyResponse,
			"ItinerarySearchClient", "fetch", false)
	}

	c.rateLimiter.EnforceRateLimit()

	startTime := time.Now()
	var response models.ItinerarySearchResponse
	err = shared.ExecuteJSONRequestWithRetry(c.httpClient, http.MethodPost, c.apiURL, body,
		c.siteOrigin, cookies, c.maxRetryAttempts, &response)
	requestTime := time.Since(startTime)

	if c.metrics != nil {
		c.metrics.RecordRequest(err == nil, requestTime)
	}
	if err != nil {
		logger.WithError(err).Error("Itinerary search failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"slice_count":  len(response.Slices),
		"request_time": requestTime,
	}).Info("Itinerary search completed")

	return &response, nil
}
