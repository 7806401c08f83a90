package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/attribution"
	"github.com/step6836/marketing-attribution/internal/config"
	"github.com/step6836/marketing-attribution/internal/domain"
	"github.com/step6836/marketing-attribution/internal/dto"
	"github.com/step6836/marketing-attribution/internal/repository"
)

// AttributionService runs the attribution models over a stored event window
// and shapes the results into the dashboard report
type AttributionService struct {
	repository repository.EventRepository
	estimator  attribution.ConversionEstimator
	config     config.Attribution
	log        *zap.Logger
}

// NewAttributionService creates a new attribution service. A nil estimator
// selects the built-in heuristic conversion model.
func NewAttributionService(repo repository.EventRepository, estimator attribution.ConversionEstimator, cfg config.Attribution, log *zap.Logger) *AttributionService {
	if estimator == nil {
		estimator = attribution.NewHeuristicEstimator()
	}
	return &AttributionService{
		repository: repo,
		estimator:  estimator,
		config:     cfg,
		log:        log,
	}
}

// GetReport loads the cleaned event window, runs all five attribution
// models, and returns the comparison report
func (s *AttributionService) GetReport(req *dto.GetAttributionReportRequest) (*dto.AttributionReportResponse, error) {
	ctx := context.Background()

	if req.From > req.To {
		s.log.Warn("Invalid time range for attribution report",
			zap.Int64("from", req.From),
			zap.Int64("to", req.To))
		return nil, fmt.Errorf("from timestamp must be less than or equal to to timestamp")
	}

	events, err := s.repository.GetEventHistory(ctx, repository.EventHistoryQuery{
		From:              req.From,
		To:                req.To,
		BotEventThreshold: s.config.BotEventThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load event history: %w", err)
	}

	histories := attribution.BuildHistories(events)
	records := attribution.BuildRecords(histories, s.config.SampleUsers)

	s.log.Info("Running attribution models",
		zap.Int64("from", req.From),
		zap.Int64("to", req.To),
		zap.Int("events", len(events)),
		zap.Int("users", len(histories)),
		zap.Int("journeys", len(records)))

	batch := attribution.Batch{Records: records, Histories: histories}
	models := []attribution.Model{
		attribution.FirstTouchModel{},
		attribution.LastTouchModel{},
		attribution.LinearModel{},
		attribution.NewShapleyModel(s.estimator, attribution.ShapleyConfig{
			SampleJourneys: s.config.ShapleyJourneys,
			MaxTouchpoints: s.config.MaxTouchpoints,
		}),
		attribution.NewMarkovModel(attribution.MarkovConfig{
			SampleUsers:  s.config.MarkovSampleUsers,
			PoolJourneys: s.config.ShapleyJourneys,
			MaxSteps:     s.config.MarkovMaxSteps,
		}),
	}

	results := make([]attribution.Result, 0, len(models))
	for _, model := range models {
		result := model.Attribute(batch)
		if result.Empty {
			s.log.Warn("Attribution model had no usable data",
				zap.String("model", model.Name()))
		}
		results = append(results, result)
	}

	comparison := attribution.Compare(results)
	stats := attribution.SummarizeJourneys(records)

	response := &dto.AttributionReportResponse{
		Meta: dto.ReportMeta{
			TotalEvents:    len(events),
			TotalUsers:     len(histories),
			AnalysisSample: len(records),
			BotFiltered:    s.config.BotEventThreshold > 0,
		},
		AttributionModels: make(map[string]dto.TouchpointShares, len(results)),
		JourneyStats: dto.JourneyStatsData{
			AvgTouchpoints:        stats.AvgTouchpoints,
			AvgDays:               stats.AvgDays,
			TotalJourneysAnalyzed: stats.TotalJourneys,
			TotalRevenue:          stats.TotalRevenue,
		},
		ModelComparison: make(map[string]dto.ModelScores),
	}

	for model, shares := range comparison.Percent {
		response.AttributionModels[model] = dto.TouchpointShares{
			View:     shares[domain.TouchpointView],
			Cart:     shares[domain.TouchpointCart],
			Purchase: shares[domain.TouchpointPurchase],
		}
	}

	for model, score := range attribution.Scorecard() {
		response.ModelComparison[model] = dto.ModelScores{
			Accuracy:      score.Accuracy,
			Fairness:      score.Fairness,
			BusinessValue: score.BusinessValue,
		}
	}

	s.log.Info("Attribution report computed",
		zap.Int("journeys", stats.TotalJourneys),
		zap.Float64("total_revenue", stats.TotalRevenue))

	return response, nil
}
