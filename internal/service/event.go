package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/dto"
	"github.com/step6836/marketing-attribution/internal/queue"
)

// EventService validates incoming marketing events and publishes them to
// the ingestion queue
type EventService struct {
	publisher queue.QueuePublisher
	log       *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(publisher queue.QueuePublisher, log *zap.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		log:       log,
	}
}

// computeEventID generates a deterministic event ID based on event content
// Uses SHA-256 hash of: user_id|event_type|timestamp|price
func computeEventID(event *dto.PublishEventRequest) string {
	price := ""
	if event.Price != nil {
		price = fmt.Sprintf("%.2f", *event.Price)
	}

	data := fmt.Sprintf("%s|%s|%d|%s",
		event.UserID,
		event.EventType,
		event.Timestamp,
		price,
	)

	// SHA-256 hash for deterministic ID
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessEvent processes a single event
func (s *EventService) ProcessEvent(event *dto.PublishEventRequest) (string, error) {
	ctx := context.Background()

	currentTime := time.Now().Unix()
	if event.Timestamp > currentTime+1 {
		s.log.Warn("Timestamp validation failed: future timestamp",
			zap.Int64("event_timestamp", event.Timestamp),
			zap.Int64("current_time", currentTime),
			zap.String("event_type", event.EventType))
		return "", fmt.Errorf("timestamp cannot be in the future: %d > %d", event.Timestamp, currentTime)
	}

	if event.Price != nil && *event.Price < 0 {
		s.log.Warn("Price validation failed: negative price",
			zap.Float64("price", *event.Price),
			zap.String("event_type", event.EventType))
		return "", fmt.Errorf("price cannot be negative: %v", *event.Price)
	}

	eventID := computeEventID(event)

	err := s.publisher.PublishEvent(ctx, event, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return eventID, nil
}

// ProcessBulkEvents validates and processes multiple events
func (s *EventService) ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i, event := range events {
		eventID, err := s.ProcessEvent(&event)
		if err != nil {
			errors = append(errors, err.Error())
			s.log.Warn("Failed to process event in bulk",
				zap.Int("index", i),
				zap.Error(err),
				zap.String("event_type", event.EventType))
			continue
		}
		eventIDs = append(eventIDs, eventID)
	}

	return eventIDs, errors, nil
}
