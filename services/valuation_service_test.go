package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilmodi00/award-scraper/models"
)

func testMetadata() models.SearchMetadata {
	return models.SearchMetadata{
		Origin:      "Los Angeles",
		Destination: "New York",
		Date:        "2025-12-15",
		Passengers:  1,
		CabinClass:  "economy",
	}
}

type cashFixture struct {
	hash string
	rec  models.CashItinerary
}

func cashIndexOf(fixtures ...cashFixture) *models.CashPricingIndex {
	index := &models.CashPricingIndex{Records: make(map[string]models.CashItinerary)}
	for _, f := range fixtures {
		index.Order = append(index.Order, f.hash)
		index.Records[f.hash] = f.rec
	}
	return index
}

func cashEntry(hash string, fare *float64) cashFixture {
	return cashFixture{hash, models.CashItinerary{
		IsNonstop:     true,
		Segments:      []models.FlightSegment{{FlightNumber: "AA300", DepartureTime: "07:00", ArrivalTime: "15:25"}},
		TotalDuration: "5h 25m",
		CashPriceUSD:  fare,
	}}
}

func TestMergeValuationFormula(t *testing.T) {
	cash := cashIndexOf(cashEntry("hash-1", floatPtr(500)))
	award := models.AwardPricingIndex{
		"hash-1": {PointsRequired: intPtr(25000), TaxesFeesUSD: floatPtr(50)},
	}

	result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

	require.Equal(t, 1, result.TotalResults)
	offer := result.Flights[0]
	assert.Equal(t, 1.8, offer.CentsPerPoint)
	assert.Equal(t, 50.0, offer.TaxesFeesUSD)
	require.NotNil(t, offer.PointsRequired)
	assert.Equal(t, 25000, *offer.PointsRequired)
	require.NotNil(t, offer.CashPriceUSD)
	assert.Equal(t, 500.0, *offer.CashPriceUSD)
}

func TestMergeDropsCashOnlyItineraries(t *testing.T) {
	cash := cashIndexOf(
		cashEntry("matched", floatPtr(400)),
		cashEntry("cash-only", floatPtr(300)),
	)
	award := models.AwardPricingIndex{
		"matched": {PointsRequired: intPtr(20000), TaxesFeesUSD: floatPtr(11.20)},
	}

	result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

	require.Equal(t, 1, result.TotalResults)
	assert.Equal(t, 1.94, result.Flights[0].CentsPerPoint)
}

func TestMergeSkipsIncompletePricing(t *testing.T) {
	testCases := []struct {
		name  string
		cash  *float64
		award models.AwardFare
	}{
		{"missing cash fare", nil, models.AwardFare{PointsRequired: intPtr(10000), TaxesFeesUSD: floatPtr(5.60)}},
		{"missing points", floatPtr(500), models.AwardFare{TaxesFeesUSD: floatPtr(5.60)}},
		{"zero points", floatPtr(500), models.AwardFare{PointsRequired: intPtr(0), TaxesFeesUSD: floatPtr(5.60)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cash := cashIndexOf(cashEntry("hash-1", tc.cash))
			award := models.AwardPricingIndex{"hash-1": tc.award}

			result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

			assert.Equal(t, 0, result.TotalResults)
			assert.Empty(t, result.Flights)
		})
	}
}

func TestMergeMissingTaxesDefaultsToZero(t *testing.T) {
	cash := cashIndexOf(cashEntry("hash-1", floatPtr(250)))
	award := models.AwardPricingIndex{"hash-1": {PointsRequired: intPtr(12500)}}

	result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

	require.Equal(t, 1, result.TotalResults)
	assert.Equal(t, 0.0, result.Flights[0].TaxesFeesUSD)
	assert.Equal(t, 2.0, result.Flights[0].CentsPerPoint)
}

func TestMergeNoMatchesProducesEmptyResult(t *testing.T) {
	cash := cashIndexOf(cashEntry("a", floatPtr(100)), cashEntry("b", floatPtr(200)))
	award := models.AwardPricingIndex{"c": {PointsRequired: intPtr(5000)}}

	result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

	assert.Equal(t, 0, result.TotalResults)
	assert.NotNil(t, result.Flights)
	assert.Empty(t, result.Flights)
}

func TestMergePreservesCashResponseOrder(t *testing.T) {
	cash := cashIndexOf(
		cashEntry("third-cheapest", floatPtr(300)),
		cashEntry("first-cheapest", floatPtr(100)),
		cashEntry("second-cheapest", floatPtr(200)),
	)
	award := models.AwardPricingIndex{
		"first-cheapest":  {PointsRequired: intPtr(10000)},
		"second-cheapest": {PointsRequired: intPtr(10000)},
		"third-cheapest":  {PointsRequired: intPtr(10000)},
	}

	result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

	require.Equal(t, 3, result.TotalResults)
	assert.Equal(t, 3.0, result.Flights[0].CentsPerPoint)
	assert.Equal(t, 1.0, result.Flights[1].CentsPerPoint)
	assert.Equal(t, 2.0, result.Flights[2].CentsPerPoint)
}

func TestMergeIdempotent(t *testing.T) {
	cash := cashIndexOf(
		cashEntry("hash-1", floatPtr(500)),
		cashEntry("hash-2", nil),
		cashEntry("hash-3", floatPtr(320.50)),
	)
	award := models.AwardPricingIndex{
		"hash-1": {PointsRequired: intPtr(25000), TaxesFeesUSD: floatPtr(50)},
		"hash-2": {PointsRequired: intPtr(10000)},
		"hash-3": {PointsRequired: intPtr(16000), TaxesFeesUSD: floatPtr(5.60)},
	}

	engine := NewValuationEngine(nil)
	first, err := json.Marshal(engine.Merge(cash, award, testMetadata()))
	require.NoError(t, err)
	second, err := json.Marshal(engine.Merge(cash, award, testMetadata()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMergeIntersectionProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("offer count equals the fully priced key intersection", prop.ForAll(
		func(cashCount, awardCount int) bool {
			cash := &models.CashPricingIndex{Records: make(map[string]models.CashItinerary)}
			for i := 0; i < cashCount; i++ {
				entry := cashEntry(fmt.Sprintf("hash-%d", i), floatPtr(float64(100+i)))
				cash.Order = append(cash.Order, entry.hash)
				cash.Records[entry.hash] = entry.rec
			}

			award := make(models.AwardPricingIndex, awardCount)
			for i := 0; i < awardCount; i++ {
				award[fmt.Sprintf("hash-%d", i)] = models.AwardFare{PointsRequired: intPtr(10000 + i)}
			}

			result := NewValuationEngine(nil).Merge(cash, award, testMetadata())

			matched := cashCount
			if awardCount < matched {
				matched = awardCount
			}
			return result.TotalResults == matched && len(result.Flights) == matched
		},
		gen.IntRange(0, 25),
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Full parse+merge pass over two synthetic payloads: one fully matched
// itinerary and one present only on the cash side.
func TestEndToEndParseAndMerge(t *testing.T) {
	cashPayload := `{
		"slices": [
			{
				"hash": "matched",
				"stops": 0,
				"durationInMinutes": 325,
				"segments": [
					{
						"flight": {"carrierCode": "AA", "flightNumber": 300},
						"departureDateTime": "2025-12-15T07:00:00.000-08:00",
						"arrivalDateTime": "2025-12-15T15:25:00.000-05:00"
					}
				],
				"pricingDetail": [
					{"productGroup": "MAIN", "productType": "COACH", "allPassengerDisplayTotal": {"amount": 500}}
				]
			},
			{
				"hash": "cash-only",
				"stops": 1,
				"durationInMinutes": 412,
				"segments": [
					{
						"flight": {"carrierCode": "AA", "flightNumber": "1845"},
						"departureDateTime": "2025-12-15T09:10:00.000-08:00",
						"arrivalDateTime": "2025-12-15T14:02:00.000-06:00"
					}
				],
				"pricingDetail": [
					{"productGroup": "MAIN", "productType": "COACH", "allPassengerDisplayTotal": {"amount": 289}}
				]
			}
		],
		"utag": {
			"search_origin_city": "Los Angeles",
			"search_destination_city": "New York",
			"adult_passengers": "1"
		},
		"responseMetadata": {"departureDate": "2025-12-15"}
	}`

	awardPayload := `{
		"slices": [
			{
				"hash": "matched",
				"pricingDetail": [
					{"benefitKey": "COACH", "perPassengerAwardPoints": 25000, "perPassengerTaxesAndFees": {"amount": 50}}
				]
			},
			{
				"hash": "award-only",
				"pricingDetail": [
					{"benefitKey": "COACH", "perPassengerAwardPoints": 12000, "perPassengerTaxesAndFees": {"amount": 5.6}}
				]
			}
		]
	}`

	var cashResponse, awardResponse models.ItinerarySearchResponse
	require.NoError(t, json.Unmarshal([]byte(cashPayload), &cashResponse))
	require.NoError(t, json.Unmarshal([]byte(awardPayload), &awardResponse))

	cashIndex := ParseCashPricing(&cashResponse, nil)
	awardIndex := ParseAwardPricing(&awardResponse)
	result := NewValuationEngine(nil).Merge(cashIndex, awardIndex, BuildSearchMetadata(&cashResponse))

	assert.Equal(t, "Los Angeles", result.SearchMetadata.Origin)
	assert.Equal(t, "New York", result.SearchMetadata.Destination)
	assert.Equal(t, "2025-12-15", result.SearchMetadata.Date)
	assert.Equal(t, 1, result.SearchMetadata.Passengers)
	assert.Equal(t, "economy", result.SearchMetadata.CabinClass)

	require.Equal(t, 1, result.TotalResults)
	offer := result.Flights[0]
	assert.True(t, offer.IsNonstop)
	assert.Equal(t, "5h 25m", offer.TotalDuration)
	assert.Equal(t, 1.8, offer.CentsPerPoint)
	require.Len(t, offer.Segments, 1)
	assert.Equal(t, "AA300", offer.Segments[0].FlightNumber)
	assert.Equal(t, "07:00", offer.Segments[0].DepartureTime)
	assert.Equal(t, "15:25", offer.Segments[0].ArrivalTime)
}
