package models

// FlightSegment is one flown leg of an itinerary. Times are local clock
// times in 24-hour "HH:MM" form, derived from the raw API timestamps.
type FlightSegment struct {
	FlightNumber  string `json:"flight_number"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

// CashItinerary is the parsed revenue-search view of one itinerary group.
// CashPriceUSD is nil when the pricing breakdown has no MAIN/COACH entry.
type CashItinerary struct {
	IsNonstop     bool
	Segments      []FlightSegment
	TotalDuration string
	CashPriceUSD  *float64
}

// AwardFare is the parsed award-search view of one itinerary group. Both
// fields are nil when the pricing breakdown has no COACH benefit entry.
type AwardFare struct {
	PointsRequired *int
	TaxesFeesUSD   *float64
}

// CashPricingIndex holds parsed cash itineraries keyed by slice hash,
// preserving the response order of the hashes so merged output keeps the
// upstream ordering.
type CashPricingIndex struct {
	Order   []string
	Records map[string]CashItinerary
}

// AwardPricingIndex holds parsed award fares keyed by slice hash.
type AwardPricingIndex map[string]AwardFare

// FlightOffer is one merged cash+award itinerary with its valuation.
type FlightOffer struct {
	IsNonstop      bool            `json:"is_nonstop"`
	Segments       []FlightSegment `json:"segments"`
	TotalDuration  string          `json:"total_duration"`
	PointsRequired *int            `json:"points_required"`
	CashPriceUSD   *float64        `json:"cash_price_usd"`
	TaxesFeesUSD   float64         `json:"taxes_fees_usd"`
	CentsPerPoint  float64         `json:"cpp"`
}

// SearchMetadata echoes the search context as reported by the cash payload
// itself, not the caller's parameters.
type SearchMetadata struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Passengers  int    `json:"passengers"`
	CabinClass  string `json:"cabin_class"`
}

// SearchResult is the top-level output document written to disk.
type SearchResult struct {
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Flights        []FlightOffer  `json:"flights"`
	TotalResults   int            `json:"total_results"`
}
