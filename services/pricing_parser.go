package services

import (
	"github.com/sirupsen/logrus"

	"github.com/fenilmodi00/award-scraper/models"
	"github.com/fenilmodi00/award-scraper/shared"
)

// Fare-class tags the parsers look for in the pricing breakdowns
const (
	productGroupMain = "MAIN"
	productTypeCoach = "COACH"
	benefitKeyCoach  = "COACH"
)

// ParseCashPricing extracts per-slice cash itinerary records from a Revenue
// search response. Slices with malformed segment timestamps are rejected
// individually and logged; the remaining slices still parse. A duplicate
// slice hash overwrites the earlier record and is logged loudly.
func ParseCashPricing(response *models.ItinerarySearchResponse, metrics *shared.RunMetrics) *models.CashPricingIndex {
	logger := logrus.WithField("component", "PricingParser")

	index := &models.CashPricingIndex{
		Order:   make([]string, 0, len(response.Slices)),
		Records: make(map[string]models.CashItinerary, len(response.Slices)),
	}

	for _, slice := range response.Slices {
		if slice.Hash == "" {
			logger.Warn("Skipping cash slice without hash")
			continue
		}

		record, err := parseCashSlice(slice)
		if err != nil {
			logger.WithError(err).WithField("slice_hash", slice.Hash).
				Warn("Rejecting cash itinerary group with malformed data")
			if metrics != nil {
				metrics.RecordRejectedSlice()
			}
			continue
		}

		if _, exists := index.Records[slice.Hash]; exists {
			logger.WithField("slice_hash", slice.Hash).
				Warn("Duplicate slice hash in cash response, keeping the later record")
		} else {
			index.Order = append(index.Order, slice.Hash)
		}
		index.Records[slice.Hash] = *record
	}

	return index
}

func parseCashSlice(slice models.RawSlice) (*models.CashItinerary, error) {
	segments := make([]models.FlightSegment, 0, len(slice.Segments))
	for _, rawSegment := range slice.Segments {
		departureTime, err := FormatClockTime(rawSegment.DepartureDateTime)
		if err != nil {
			return nil, err
		}
		arrivalTime, err := FormatClockTime(rawSegment.ArrivalDateTime)
		if err != nil {
			return nil, err
		}

		segments = append(segments, models.FlightSegment{
			FlightNumber:  rawSegment.Flight.CarrierCode + rawSegment.Flight.FlightNumber.String(),
			DepartureTime: departureTime,
			ArrivalTime:   arrivalTime,
		})
	}

	record := &models.CashItinerary{
		IsNonstop:     slice.Stops == 0,
		Segments:      segments,
		TotalDuration: FormatDuration(slice.DurationInMinutes),
	}

	for _, detail := range slice.PricingDetail {
		if detail.ProductGroup == productGroupMain && detail.ProductType == productTypeCoach {
			if detail.AllPassengerDisplayTotal != nil {
				amount := detail.AllPassengerDisplayTotal.Amount
				record.CashPriceUSD = &amount
			}
			break
		}
	}

	return record, nil
}

// ParseAwardPricing extracts per-slice award fares from an Award search
// response. A slice without a COACH benefit entry still appears in the
// index, with both fare fields absent.
func ParseAwardPricing(response *models.ItinerarySearchResponse) models.AwardPricingIndex {
	logger := logrus.WithField("component", "PricingParser")

	index := make(models.AwardPricingIndex, len(response.Slices))
	for _, slice := range response.Slices {
		if slice.Hash == "" {
			logger.Warn("Skipping award slice without hash")
			continue
		}

		var fare models.AwardFare
		for _, detail := range slice.PricingDetail {
			if detail.BenefitKey != benefitKeyCoach {
				continue
			}
			if detail.PerPassengerAwardPoints != nil {
				points := *detail.PerPassengerAwardPoints
				fare.PointsRequired = &points
			}
			if detail.PerPassengerTaxesAndFees != nil {
				amount := detail.PerPassengerTaxesAndFees.Amount
				fare.TaxesFeesUSD = &amount
			}
			break
		}

		if _, exists := index[slice.Hash]; exists {
			logger.WithField("slice_hash", slice.Hash).
				Warn("Duplicate slice hash in award response, keeping the later record")
		}
		index[slice.Hash] = fare
	}

	return index
}
