package service

import (
	"github.com/step6836/marketing-attribution/internal/dto"
)

// EventServicer defines the interface for event ingestion operations
type EventServicer interface {
	ProcessEvent(event *dto.PublishEventRequest) (string, error)
	ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error)
}

// AttributionServicer defines the interface for attribution report operations
type AttributionServicer interface {
	GetReport(req *dto.GetAttributionReportRequest) (*dto.AttributionReportResponse, error)
}
