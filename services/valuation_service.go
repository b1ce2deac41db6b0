package services

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/fenilmodi00/award-scraper/models"
	"github.com/fenilmodi00/award-scraper/shared"
)

// SkipReason tags why a cash itinerary produced no merged offer.
type SkipReason string

const (
	SkipNoAwardMatch    SkipReason = "no_award_match"
	SkipMissingCashFare SkipReason = "missing_cash_fare"
	SkipMissingPoints   SkipReason = "missing_points"
	SkipZeroPoints      SkipReason = "zero_points"
)

// ValuationOutcome is the per-itinerary merge result: either a valued offer
// or a skip reason, never both. A valuation is never computed from
// incomplete inputs; callers must handle the skip case.
type ValuationOutcome struct {
	Offer *models.FlightOffer
	Skip  SkipReason
}

// Valued reports whether the outcome carries an offer
func (o ValuationOutcome) Valued() bool {
	return o.Offer != nil
}

// ValuationEngine joins parsed cash and award pricing by slice hash and
// computes the cents-per-point metric for each fully priced match.
type ValuationEngine struct {
	metrics *shared.RunMetrics
	logger  *logrus.Entry
}

// NewValuationEngine creates a valuation engine
func NewValuationEngine(metrics *shared.RunMetrics) *ValuationEngine {
	return &ValuationEngine{
		metrics: metrics,
		logger:  logrus.WithField("component", "ValuationEngine"),
	}
}

// Merge produces the final search result. Offers follow the cash response
// order; itineraries without an award counterpart are dropped, and matched
// itineraries missing a cash fare or usable points are skipped with a
// logged reason.
func (e *ValuationEngine) Merge(cash *models.CashPricingIndex, award models.AwardPricingIndex, metadata models.SearchMetadata) *models.SearchResult {
	flights := make([]models.FlightOffer, 0, len(cash.Order))

	for _, hash := range cash.Order {
		outcome := e.evaluate(cash.Records[hash], award, hash)
		if outcome.Valued() {
			flights = append(flights, *outcome.Offer)
			continue
		}

		if outcome.Skip == SkipNoAwardMatch {
			// Cash-only itineraries are expected, not noteworthy
			e.logger.WithField("slice_hash", hash).Debug("Dropping cash-only itinerary")
			continue
		}

		e.logger.WithFields(logrus.Fields{
			"slice_hash":  hash,
			"skip_reason": outcome.Skip,
		}).Warn("Skipping matched itinerary with incomplete pricing")
		if e.metrics != nil {
			e.metrics.RecordSkippedOffer()
		}
	}

	return &models.SearchResult{
		SearchMetadata: metadata,
		Flights:        flights,
		TotalResults:   len(flights),
	}
}

func (e *ValuationEngine) evaluate(cashRecord models.CashItinerary, award models.AwardPricingIndex, hash string) ValuationOutcome {
	awardFare, matched := award[hash]
	if !matched {
		return ValuationOutcome{Skip: SkipNoAwardMatch}
	}
	if cashRecord.CashPriceUSD == nil {
		return ValuationOutcome{Skip: SkipMissingCashFare}
	}
	if awardFare.PointsRequired == nil {
		return ValuationOutcome{Skip: SkipMissingPoints}
	}
	if *awardFare.PointsRequired == 0 {
		return ValuationOutcome{Skip: SkipZeroPoints}
	}

	// Taxes default to zero when absent; points never do (checked above)
	taxesFees := 0.0
	if awardFare.TaxesFeesUSD != nil {
		taxesFees = *awardFare.TaxesFeesUSD
	}

	cashPrice := *cashRecord.CashPriceUSD
	pointsRequired := *awardFare.PointsRequired
	centsPerPoint := roundToHundredth((cashPrice - taxesFees) / float64(pointsRequired) * 100)

	return ValuationOutcome{Offer: &models.FlightOffer{
		IsNonstop:      cashRecord.IsNonstop,
		Segments:       cashRecord.Segments,
		TotalDuration:  cashRecord.TotalDuration,
		PointsRequired: &pointsRequired,
		CashPriceUSD:   &cashPrice,
		TaxesFeesUSD:   taxesFees,
		CentsPerPoint:  centsPerPoint,
	}}
}

// BuildSearchMetadata reads the output search metadata verbatim from the
// cash payload's embedded tags rather than from the caller's parameters.
func BuildSearchMetadata(response *models.ItinerarySearchResponse) models.SearchMetadata {
	passengers, err := response.Utag.AdultPassengers.Int64()
	if err != nil && response.Utag.AdultPassengers != "" {
		logrus.WithField("component", "ValuationEngine").
			Warnf("Unparseable adult_passengers tag %q, reporting 0", response.Utag.AdultPassengers)
	}

	return models.SearchMetadata{
		Origin:      response.Utag.SearchOriginCity,
		Destination: response.Utag.SearchDestinationCity,
		Date:        response.ResponseMetadata.DepartureDate,
		Passengers:  int(passengers),
		CabinClass:  "economy",
	}
}

func roundToHundredth(value float64) float64 {
	return math.Round(value*100) / 100
}
