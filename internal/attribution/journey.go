package attribution

import (
	"sort"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// UserHistory is one user's full event stream in chronological order.
type UserHistory struct {
	UserID string
	Events []*domain.Event
}

// Record summarizes a single purchase journey: every touchpoint from the
// user's first event up to one purchase. A user with several purchases
// produces one record per purchase, each covering the cumulative history up
// to that purchase.
type Record struct {
	UserID        string
	PurchaseValue float64
	FirstTouch    domain.TouchpointType
	LastTouch     domain.TouchpointType
	JourneyLength int
	JourneyDays   int
}

const secondsPerDay = 86400

// BuildHistories groups events by user, preserving the first-seen order of
// users, and sorts each user's events chronologically. The stable sort keeps
// the input order for equal timestamps, so rebuilding from the same batch is
// deterministic.
func BuildHistories(events []*domain.Event) []UserHistory {
	index := make(map[string]int)
	histories := make([]UserHistory, 0)

	for _, event := range events {
		i, ok := index[event.UserID]
		if !ok {
			i = len(histories)
			index[event.UserID] = i
			histories = append(histories, UserHistory{UserID: event.UserID})
		}
		histories[i].Events = append(histories[i].Events, event)
	}

	for i := range histories {
		events := histories[i].Events
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Timestamp < events[b].Timestamp
		})
	}

	return histories
}

// BuildRecords derives one journey record per purchase for the first
// maxUsers purchasing users (all of them when maxUsers <= 0). Purchases
// with no preceding touchpoint carry nothing to attribute and are skipped.
// A purchase without a price still yields a journey, with zero value.
func BuildRecords(histories []UserHistory, maxUsers int) []Record {
	records := make([]Record, 0)
	users := 0

	for _, history := range histories {
		if maxUsers > 0 && users >= maxUsers {
			break
		}

		purchasing := false
		for i, event := range history.Events {
			if event.EventType != domain.TouchpointPurchase {
				continue
			}
			purchasing = true

			// The journey covers every event with a timestamp up to and
			// including the purchase's, so events tied with the purchase
			// belong to it regardless of sort position.
			end := i
			for end+1 < len(history.Events) && history.Events[end+1].Timestamp == event.Timestamp {
				end++
			}

			// A lone purchase has no touchpoint to credit.
			if end == 0 {
				continue
			}

			value := 0.0
			if event.Price != nil {
				value = *event.Price
			}

			first := history.Events[0]
			records = append(records, Record{
				UserID:        history.UserID,
				PurchaseValue: value,
				FirstTouch:    first.EventType,
				LastTouch:     history.Events[end-1].EventType,
				JourneyLength: end,
				JourneyDays:   int((event.Timestamp - first.Timestamp) / secondsPerDay),
			})
		}

		if purchasing {
			users++
		}
	}

	return records
}
