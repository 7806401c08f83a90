package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// MessageParser turns raw queue message bytes into an event
type MessageParser interface {
	Parse(body []byte) (*domain.Event, error)
}

// JSONEventParser implements MessageParser for JSON-formatted event messages
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse parses a JSON message body into an Event
func (p *JSONEventParser) Parse(body []byte) (*domain.Event, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	event := &domain.Event{
		EventID:     getStringField(msgBody, "event_id"),
		UserID:      getStringField(msgBody, "user_id"),
		EventType:   domain.TouchpointType(getStringField(msgBody, "event_type")),
		Timestamp:   getInt64Field(msgBody, "timestamp"),
		Price:       getPriceField(msgBody, "price"),
		ProcessedAt: time.Now(),
		Version:     uint64(time.Now().UnixNano()),
	}

	return event, nil
}

// validateEvent rejects messages that cannot feed the attribution pipeline:
// journeys are keyed by user and ordered by timestamp, so both are required.
func validateEvent(event *domain.Event) error {
	if event.UserID == "" {
		return fmt.Errorf("event is missing user_id")
	}
	if event.EventType == "" {
		return fmt.Errorf("event is missing event_type")
	}
	if event.Timestamp <= 0 {
		return fmt.Errorf("event has invalid timestamp: %d", event.Timestamp)
	}
	return nil
}

// Helper functions for extracting fields from parsed JSON
func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Field(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}

func getPriceField(m map[string]interface{}, key string) *float64 {
	if val, ok := m[key].(float64); ok {
		return &val
	}
	return nil
}
