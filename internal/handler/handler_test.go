package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/dto"
)

const (
	testTimestamp int64 = 1766702551
)

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) ProcessEvent(event *dto.PublishEventRequest) (string, error) {
	args := m.Called(event)
	return args.String(0), args.Error(1)
}

func (m *MockEventService) ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	args := m.Called(events)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

// MockAttributionService is a mock implementation of service.AttributionServicer
type MockAttributionService struct {
	mock.Mock
}

func (m *MockAttributionService) GetReport(req *dto.GetAttributionReportRequest) (*dto.AttributionReportResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttributionReportResponse), args.Error(1)
}

func newTestHandler() (*Handler, *MockEventService, *MockAttributionService) {
	mockEvents := new(MockEventService)
	mockAttribution := new(MockAttributionService)
	handler := NewHandler(mockEvents, mockAttribution, zap.NewNop())
	return handler, mockEvents, mockAttribution
}

func TestHandler_HealthCheck(t *testing.T) {
	handler, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_PublishEvent_Success(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	eventReq := dto.PublishEventRequest{
		EventType: "view",
		UserID:    "user123",
		Timestamp: testTimestamp,
	}

	mockEvents.On("ProcessEvent", &eventReq).Return("event-id-123", nil)

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "event-id-123", response.EventID)
	assert.Equal(t, "accepted", response.Status)
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEvent_InvalidJSON(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	invalidJSON := []byte(`{"event_type": "view", invalid}`)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(invalidJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockEvents.AssertNotCalled(t, "ProcessEvent")
}

func TestHandler_PublishEvent_MissingRequiredFields(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	eventReq := dto.PublishEventRequest{
		EventType: "view",
		// Missing required fields: UserID, Timestamp
	}

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockEvents.AssertNotCalled(t, "ProcessEvent")
}

func TestHandler_PublishEvent_ServiceError(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	eventReq := dto.PublishEventRequest{
		EventType: "cart",
		UserID:    "user123",
		Timestamp: testTimestamp,
	}

	serviceErr := errors.New("queue publish error")
	mockEvents.On("ProcessEvent", &eventReq).Return("", serviceErr)

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
	assert.Contains(t, response.Message, "queue publish error")
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEventsBulk_Success(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	bulkReq := dto.PublishEventsBulkRequest{
		Events: []dto.PublishEventRequest{
			{
				EventType: "view",
				UserID:    "user1",
				Timestamp: testTimestamp,
			},
			{
				EventType: "cart",
				UserID:    "user2",
				Timestamp: testTimestamp,
			},
		},
	}

	mockEvents.On("ProcessBulkEvents", bulkReq.Events).Return(
		[]string{"event-id-1", "event-id-2"},
		[]string{},
		nil,
	)

	body, _ := json.Marshal(bulkReq)
	req := httptest.NewRequest(http.MethodPost, "/events/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishBulkEventsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Accepted)
	assert.Equal(t, 0, response.Rejected)
	assert.Len(t, response.EventIDs, 2)
	assert.Empty(t, response.Errors)
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEventsBulk_PartialSuccess(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	bulkReq := dto.PublishEventsBulkRequest{
		Events: []dto.PublishEventRequest{
			{
				EventType: "view",
				UserID:    "user1",
				Timestamp: testTimestamp,
			},
			{
				EventType: "cart",
				UserID:    "user2",
				Timestamp: testTimestamp,
			},
		},
	}

	mockEvents.On("ProcessBulkEvents", bulkReq.Events).Return(
		[]string{"event-id-1"},
		[]string{"timestamp validation failed"},
		nil,
	)

	body, _ := json.Marshal(bulkReq)
	req := httptest.NewRequest(http.MethodPost, "/events/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishBulkEventsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 1, response.Accepted)
	assert.Equal(t, 1, response.Rejected)
	assert.Len(t, response.EventIDs, 1)
	assert.Len(t, response.Errors, 1)
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEventsBulk_EmptyEvents(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	bulkReq := dto.PublishEventsBulkRequest{
		Events: []dto.PublishEventRequest{},
	}

	body, _ := json.Marshal(bulkReq)
	req := httptest.NewRequest(http.MethodPost, "/events/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockEvents.AssertNotCalled(t, "ProcessBulkEvents")
}

func TestHandler_GetAttributionReport_Success(t *testing.T) {
	handler, _, mockAttribution := newTestHandler()

	expectedResponse := &dto.AttributionReportResponse{
		Meta: dto.ReportMeta{
			TotalEvents:    3,
			TotalUsers:     1,
			AnalysisSample: 1,
			BotFiltered:    true,
		},
		AttributionModels: map[string]dto.TouchpointShares{
			"first_touch": {View: 100},
			"last_touch":  {Cart: 100},
			"linear":      {View: 50, Cart: 50},
		},
		JourneyStats: dto.JourneyStatsData{
			AvgTouchpoints:        2,
			TotalJourneysAnalyzed: 1,
			TotalRevenue:          100,
		},
	}

	mockAttribution.On("GetReport", &dto.GetAttributionReportRequest{
		From: 1000,
		To:   2000,
	}).Return(expectedResponse, nil)

	req := httptest.NewRequest(http.MethodGet, "/attribution/report?from=1000&to=2000", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AttributionReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 3, response.Meta.TotalEvents)
	assert.Equal(t, 100.0, response.AttributionModels["first_touch"].View)
	assert.Equal(t, 100.0, response.JourneyStats.TotalRevenue)
	mockAttribution.AssertExpectations(t)
}

func TestHandler_GetAttributionReport_MissingQueryParams(t *testing.T) {
	handler, _, mockAttribution := newTestHandler()

	// Missing required query parameters
	req := httptest.NewRequest(http.MethodGet, "/attribution/report?from=1000", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockAttribution.AssertNotCalled(t, "GetReport")
}

func TestHandler_GetAttributionReport_ServiceError(t *testing.T) {
	handler, _, mockAttribution := newTestHandler()

	serviceErr := errors.New("database connection error")
	mockAttribution.On("GetReport", &dto.GetAttributionReportRequest{
		From: 1000,
		To:   2000,
	}).Return(nil, serviceErr)

	req := httptest.NewRequest(http.MethodGet, "/attribution/report?from=1000&to=2000", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
	assert.Contains(t, response.Message, "database connection error")
	mockAttribution.AssertExpectations(t)
}
