package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/config"
	"github.com/step6836/marketing-attribution/internal/domain"
	"github.com/step6836/marketing-attribution/internal/dto"
	"github.com/step6836/marketing-attribution/internal/repository"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) InsertBatch(ctx context.Context, events []*domain.Event) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockEventRepository) GetEventHistory(ctx context.Context, query repository.EventHistoryQuery) ([]*domain.Event, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func testAttributionConfig() config.Attribution {
	return config.Attribution{
		SampleUsers:       1000,
		ShapleyJourneys:   100,
		MaxTouchpoints:    12,
		MarkovSampleUsers: 5000,
		MarkovMaxSteps:    10,
		BotEventThreshold: 1000,
	}
}

func journeyEvents() []*domain.Event {
	price := 100.0
	return []*domain.Event{
		{UserID: "user1", EventType: domain.TouchpointView, Timestamp: 1000},
		{UserID: "user1", EventType: domain.TouchpointCart, Timestamp: 2000},
		{UserID: "user1", EventType: domain.TouchpointPurchase, Timestamp: 3000, Price: &price},
	}
}

func TestAttributionService_GetReport_Success(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	req := &dto.GetAttributionReportRequest{From: 0, To: 10000}

	mockRepo.On("GetEventHistory", mock.Anything, repository.EventHistoryQuery{
		From:              0,
		To:                10000,
		BotEventThreshold: 1000,
	}).Return(journeyEvents(), nil)

	response, err := service.GetReport(req)

	assert.NoError(t, err)
	assert.NotNil(t, response)
	assert.Equal(t, 3, response.Meta.TotalEvents)
	assert.Equal(t, 1, response.Meta.TotalUsers)
	assert.Equal(t, 1, response.Meta.AnalysisSample)
	assert.True(t, response.Meta.BotFiltered)
	assert.Equal(t, 1, response.JourneyStats.TotalJourneysAnalyzed)
	assert.Equal(t, 100.0, response.JourneyStats.TotalRevenue)
	mockRepo.AssertExpectations(t)
}

func TestAttributionService_GetReport_CoversAllModels(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	mockRepo.On("GetEventHistory", mock.Anything, mock.Anything).Return(journeyEvents(), nil)

	response, err := service.GetReport(&dto.GetAttributionReportRequest{From: 0, To: 10000})

	assert.NoError(t, err)
	for _, model := range []string{"first_touch", "last_touch", "linear", "shapley", "markov"} {
		assert.Contains(t, response.AttributionModels, model)
		assert.Contains(t, response.ModelComparison, model)
	}

	// The single journey is view then cart then purchase.
	assert.Equal(t, 100.0, response.AttributionModels["first_touch"].View)
	assert.Equal(t, 100.0, response.AttributionModels["last_touch"].Cart)
	assert.InDelta(t, 50.0, response.AttributionModels["linear"].View, 1e-9)
	assert.InDelta(t, 50.0, response.AttributionModels["linear"].Cart, 1e-9)
}

func TestAttributionService_GetReport_SharesArePercentages(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	mockRepo.On("GetEventHistory", mock.Anything, mock.Anything).Return(journeyEvents(), nil)

	response, err := service.GetReport(&dto.GetAttributionReportRequest{From: 0, To: 10000})

	assert.NoError(t, err)
	for model, shares := range response.AttributionModels {
		total := shares.View + shares.Cart + shares.Purchase
		assert.InDelta(t, 100.0, total, 1e-6, model)
	}
}

func TestAttributionService_GetReport_InvalidTimeRange(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	req := &dto.GetAttributionReportRequest{From: 2000, To: 1000}

	response, err := service.GetReport(req)

	assert.Error(t, err)
	assert.Nil(t, response)
	assert.Contains(t, err.Error(), "from timestamp must be less than or equal to to timestamp")
	mockRepo.AssertNotCalled(t, "GetEventHistory")
}

func TestAttributionService_GetReport_RepositoryError(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	repoErr := errors.New("database connection error")
	mockRepo.On("GetEventHistory", mock.Anything, mock.Anything).Return(nil, repoErr)

	response, err := service.GetReport(&dto.GetAttributionReportRequest{From: 0, To: 10000})

	assert.Error(t, err)
	assert.Nil(t, response)
	assert.Contains(t, err.Error(), "failed to load event history")
	mockRepo.AssertExpectations(t)
}

func TestAttributionService_GetReport_NoEvents(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	service := NewAttributionService(mockRepo, nil, testAttributionConfig(), log)

	mockRepo.On("GetEventHistory", mock.Anything, mock.Anything).Return([]*domain.Event{}, nil)

	response, err := service.GetReport(&dto.GetAttributionReportRequest{From: 0, To: 10000})

	assert.NoError(t, err)
	assert.NotNil(t, response)
	assert.Zero(t, response.Meta.TotalEvents)
	assert.Zero(t, response.JourneyStats.TotalJourneysAnalyzed)

	// Every model still reports, with all-zero shares.
	for model, shares := range response.AttributionModels {
		assert.Zero(t, shares.View, model)
		assert.Zero(t, shares.Cart, model)
		assert.Zero(t, shares.Purchase, model)
	}
}

func TestAttributionService_GetReport_BotFilterDisabled(t *testing.T) {
	mockRepo := new(MockEventRepository)
	log := zap.NewNop()

	cfg := testAttributionConfig()
	cfg.BotEventThreshold = 0
	service := NewAttributionService(mockRepo, nil, cfg, log)

	mockRepo.On("GetEventHistory", mock.Anything, repository.EventHistoryQuery{
		From:              0,
		To:                10000,
		BotEventThreshold: 0,
	}).Return(journeyEvents(), nil)

	response, err := service.GetReport(&dto.GetAttributionReportRequest{From: 0, To: 10000})

	assert.NoError(t, err)
	assert.False(t, response.Meta.BotFiltered)
	mockRepo.AssertExpectations(t)
}
