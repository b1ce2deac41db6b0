package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fenilmodi00/award-scraper/config"
	"github.com/fenilmodi00/award-scraper/models"
	"github.com/fenilmodi00/award-scraper/services"
	"github.com/fenilmodi00/award-scraper/shared"
)

func main() {
	cfg := config.LoadConfig()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid search configuration")
	}

	if err := run(cfg); err != nil {
		if serviceErr, ok := err.(*shared.ServiceError); ok {
			serviceErr.LogError()
		}
		logrus.WithError(err).Fatal("Fare search run failed, no output written")
	}
}

// run executes the whole pipeline: session cookies, the two itinerary
// searches, parse, merge, output write. Any transport failure aborts the
// run before anything is written; the output file is either complete or
// absent.
func run(cfg *config.Config) error {
	searchID := uuid.New().String()
	logger := logrus.WithFields(logrus.Fields{
		"component":   "pipeline",
		"search_id":   searchID,
		"origin":      cfg.Origin,
		"destination": cfg.Destination,
		"date":        cfg.DepartureDate,
		"adults":      cfg.AdultPassengers,
	})
	logger.Info("Starting award fare search")

	metrics := shared.NewRunMetrics(searchID)

	sessionService := services.NewBrowserSessionService(cfg.HomepageURL, cfg.BrowserHeadless, cfg.BrowserTimeout)
	cookies, err := sessionService.AcquireSessionCookies(context.Background())
	if err != nil {
		return err
	}

	factory := shared.NewHTTPClientFactory(cfg.HTTPTimeout)
	defer factory.CleanupAllClients()

	searchClient := services.NewItinerarySearchClient(factory, cfg, metrics)
	params := services.SearchParams{
		Adults:        cfg.AdultPassengers,
		Origin:        cfg.Origin,
		Destination:   cfg.Destination,
		DepartureDate: cfg.DepartureDate,
	}

	cashResponse, err := searchClient.FetchCashPricing(params, cookies)
	if err != nil {
		return err
	}
	awardResponse, err := searchClient.FetchAwardPricing(params, cookies)
	if err != nil {
		return err
	}

	cashIndex := services.ParseCashPricing(cashResponse, metrics)
	awardIndex := services.ParseAwardPricing(awardResponse)

	engine := services.NewValuationEngine(metrics)
	result := engine.Merge(cashIndex, awardIndex, services.BuildSearchMetadata(cashResponse))

	if err := writeResult(cfg.OutputFile, result); err != nil {
		return err
	}

	metrics.LogSummary()
	logger.WithFields(logrus.Fields{
		"total_results": result.TotalResults,
		"output_file":   cfg.OutputFile,
	}).Info("Award fare search completed")

	return nil
}

func writeResult(path string, result *models.SearchResult) error {
	encoded, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return shared.WrapError(err, shared.ErrorCategoryProcessing, shared.CodeOutputWriteFailed,
			"pipeline", "writeResult", false)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return shared.WrapError(err, shared.ErrorCategoryProcessing, shared.CodeOutputWriteFailed,
			"pipeline", "writeResult", false)
	}

	return nil
}
