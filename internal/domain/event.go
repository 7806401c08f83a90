package domain

import "time"

// TouchpointType labels the kind of marketing touchpoint a user interacted
// with. The attribution algorithms treat it as an opaque comparable value;
// the constants below are the canonical types, not a closed set.
type TouchpointType string

const (
	TouchpointView     TouchpointType = "view"
	TouchpointCart     TouchpointType = "cart"
	TouchpointPurchase TouchpointType = "purchase"
)

// Event represents a cleaned marketing event stored in ClickHouse.
// Price is only set on purchase events.
type Event struct {
	EventID     string         `ch:"event_id"`
	UserID      string         `ch:"user_id"`
	EventType   TouchpointType `ch:"event_type"`
	Timestamp   int64          `ch:"timestamp"`
	Price       *float64       `ch:"price"`
	ProcessedAt time.Time      `ch:"processed_at"`
	Version     uint64         `ch:"version"`
}
