package repository

import (
	"context"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// EventHistoryQuery selects the cleaned event window the attribution engine
// analyzes. Users whose event count in the window exceeds BotEventThreshold
// are treated as bots and excluded (a threshold <= 0 disables the filter).
type EventHistoryQuery struct {
	From              int64
	To                int64
	BotEventThreshold int
}

// EventRepository defines the interface for event storage operations
type EventRepository interface {
	// InsertBatch inserts a batch of events into the storage
	InsertBatch(ctx context.Context, events []*domain.Event) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error

	// GetEventHistory returns the bot-filtered events of the window in
	// chronological order
	GetEventHistory(ctx context.Context, query EventHistoryQuery) ([]*domain.Event, error)
}
