package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/domain"
	"github.com/step6836/marketing-attribution/internal/repository"
)

// Repository implements EventRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema initializes the ClickHouse schema with ReplacingMergeTree engine
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		event_id String,
		user_id String,
		event_type LowCardinality(String),
		timestamp Int64,
		price Nullable(Float64),
		processed_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (event_id)
	ORDER BY (event_id, timestamp)
	PARTITION BY toYYYYMM(toDateTime(timestamp))
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch inserts a batch of events into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, event := range events {
		if event.Version == 0 {
			event.Version = uint64(time.Now().UnixNano())
		}

		err := batch.Append(
			event.EventID,
			event.UserID,
			string(event.EventType),
			event.Timestamp,
			event.Price,
			event.ProcessedAt,
			event.Version,
		)

		if err != nil {
			return 0, fmt.Errorf("failed to append event to batch: %w", err)
		}
		insertedCount++
	}

	if insertedCount == 0 {
		return 0, fmt.Errorf("no events could be appended to batch")
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// GetEventHistory retrieves the cleaned event window for attribution
// analysis: bot users are filtered by their event count inside the window,
// everything else comes back in chronological order.
func (r *Repository) GetEventHistory(ctx context.Context, query repository.EventHistoryQuery) ([]*domain.Event, error) {
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	args := []interface{}{query.From, query.To}

	if query.BotEventThreshold > 0 {
		whereClause += `
			AND user_id NOT IN (
				SELECT user_id
				FROM events FINAL
				WHERE timestamp >= ? AND timestamp <= ?
				GROUP BY user_id
				HAVING count() > ?
			)`
		args = append(args, query.From, query.To, query.BotEventThreshold)
	}

	historyQuery := fmt.Sprintf(`
		SELECT
			event_id,
			user_id,
			event_type,
			timestamp,
			price
		FROM events FINAL
		%s
		ORDER BY timestamp ASC
	`, whereClause)

	rows, err := r.client.Conn().Query(ctx, historyQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event history: %w", err)
	}
	defer func(rows driver.Rows) {
		err := rows.Close()
		if err != nil {
			r.log.Error("Failed to close event history rows", zap.Error(err))
		}
	}(rows)

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var (
			event     domain.Event
			eventType string
		)
		if err := rows.Scan(&event.EventID, &event.UserID, &eventType, &event.Timestamp, &event.Price); err != nil {
			return nil, fmt.Errorf("failed to scan event history row: %w", err)
		}
		event.EventType = domain.TouchpointType(eventType)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event history rows: %w", err)
	}

	return events, nil
}
