package consumer

import (
	"context"

	"github.com/step6836/marketing-attribution/internal/domain"
)

// AckFunc settles a message with the queue after processing.
type AckFunc func(context.Context) error

// Envelope carries a parsed event through the pipeline together with the
// callbacks that settle its queue message.
type Envelope struct {
	Event *domain.Event
	ack   AckFunc
	nack  AckFunc
}

// NewEnvelope wraps an event with its settlement callbacks. Either callback
// may be nil, in which case the corresponding settlement is a no-op.
func NewEnvelope(event *domain.Event, ack, nack AckFunc) *Envelope {
	return &Envelope{
		Event: event,
		ack:   ack,
		nack:  nack,
	}
}

// Ack marks the message as successfully processed
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack == nil {
		return nil
	}
	return e.ack(ctx)
}

// Nack returns the message for redelivery
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack == nil {
		return nil
	}
	return e.nack(ctx)
}
