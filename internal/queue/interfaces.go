package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/step6836/marketing-attribution/internal/dto"
)

// QueuePublisher publishes accepted marketing events for asynchronous
// processing. The event ID is assigned by the caller so retries stay
// idempotent downstream.
type QueuePublisher interface {
	PublishEvent(ctx context.Context, event *dto.PublishEventRequest, eventID string) error
}

// QueueConsumer is the receive side of the marketing event queue, as used by
// the consumer pipeline stages.
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
