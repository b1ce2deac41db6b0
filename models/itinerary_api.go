package models

import "encoding/json"

// Raw booking API payload types. Both the Revenue and Award searches return
// the same envelope; only the pricingDetail entries differ in which fields
// are populated. Unknown fields are ignored on decode.

// ItinerarySearchResponse is the raw response of one itinerary search.
type ItinerarySearchResponse struct {
	Slices           []RawSlice       `json:"slices"`
	Utag             ResponseUtag     `json:"utag"`
	ResponseMetadata ResponseMetadata `json:"responseMetadata"`
}

// RawSlice is one directional flight option, identified by its hash.
type RawSlice struct {
	Hash              string             `json:"hash"`
	Stops             int                `json:"stops"`
	DurationInMinutes int                `json:"durationInMinutes"`
	Segments          []RawSegment       `json:"segments"`
	PricingDetail     []RawPricingDetail `json:"pricingDetail"`
}

// RawSegment is one leg inside a slice.
type RawSegment struct {
	Flight            RawFlight `json:"flight"`
	DepartureDateTime string    `json:"departureDateTime"`
	ArrivalDateTime   string    `json:"arrivalDateTime"`
}

// RawFlight identifies the operating flight. The API has been observed
// returning the flight number both as a JSON number and as a numeric
// string, hence json.Number.
type RawFlight struct {
	CarrierCode  string      `json:"carrierCode"`
	FlightNumber json.Number `json:"flightNumber"`
}

// RawPricingDetail is one fare-class entry of a slice's pricing breakdown.
// Revenue searches populate the product fields, award searches the benefit
// and per-passenger award fields.
type RawPricingDetail struct {
	ProductGroup             string     `json:"productGroup"`
	ProductType              string     `json:"productType"`
	AllPassengerDisplayTotal *RawAmount `json:"allPassengerDisplayTotal"`
	BenefitKey               string     `json:"benefitKey"`
	PerPassengerAwardPoints  *int       `json:"perPassengerAwardPoints"`
	PerPassengerTaxesAndFees *RawAmount `json:"perPassengerTaxesAndFees"`
}

// RawAmount is a monetary amount wrapper.
type RawAmount struct {
	Amount float64 `json:"amount"`
}

// ResponseUtag carries the analytics tags the site embeds in the payload;
// the output search metadata is read from here verbatim.
type ResponseUtag struct {
	SearchOriginCity      string      `json:"search_origin_city"`
	SearchDestinationCity string      `json:"search_destination_city"`
	AdultPassengers       json.Number `json:"adult_passengers"`
}

// ResponseMetadata carries response-level search parameters.
type ResponseMetadata struct {
	DepartureDate string `json:"departureDate"`
}

// ItinerarySearchRequest is the request body of the itinerary search
// endpoint, shared by the Revenue and Award searches.
type ItinerarySearchRequest struct {
	Metadata      RequestMetadata    `json:"metadata"`
	Passengers    []RequestPassenger `json:"passengers"`
	RequestHeader RequestHeader      `json:"requestHeader"`
	Slices        []RequestSlice     `json:"slices"`
	TripOptions   TripOptions        `json:"tripOptions"`
	LoyaltyInfo   interface{}        `json:"loyaltyInfo"`
	Version       string             `json:"version"`
	QueryParams   QueryParams        `json:"queryParams"`
}

// RequestMetadata holds trip-level request metadata. UDO carries search
// hints; the Revenue search sets search_method, the Award search sends it
// empty.
type RequestMetadata struct {
	SelectedProducts []string          `json:"selectedProducts"`
	TripType         string            `json:"tripType"`
	UDO              map[string]string `json:"udo"`
}

// RequestPassenger is one passenger-type count.
type RequestPassenger struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RequestHeader identifies the API client.
type RequestHeader struct {
	ClientID string `json:"clientId"`
}

// RequestSlice describes one requested directional search.
type RequestSlice struct {
	AllCarriers               bool   `json:"allCarriers"`
	Cabin                     string `json:"cabin"`
	DepartureDate             string `json:"departureDate"`
	Destination               string `json:"destination"`
	DestinationNearbyAirports bool   `json:"destinationNearbyAirports"`
	MaxStops                  *int   `json:"maxStops"`
	Origin                    string `json:"origin"`
	OriginNearbyAirports      bool   `json:"originNearbyAirports"`
}

// TripOptions holds fare and locale options. SearchType discriminates
// between the "Revenue" and "Award" searches.
type TripOptions struct {
	CorporateBooking bool    `json:"corporateBooking"`
	FareType         string  `json:"fareType"`
	Locale           string  `json:"locale"`
	PointOfSale      *string `json:"pointOfSale"`
	SearchType       string  `json:"searchType"`
}

// QueryParams holds pagination and sort parameters.
type QueryParams struct {
	SliceIndex  int    `json:"sliceIndex"`
	SessionID   string `json:"sessionId"`
	SolutionSet string `json:"solutionSet"`
	SolutionID  string `json:"solutionId"`
	Sort        string `json:"sort"`
}
