package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/step6836/marketing-attribution/internal/config"
	"github.com/step6836/marketing-attribution/internal/queue"
	"github.com/step6836/marketing-attribution/internal/repository"
)

// Stage channel capacities and SQS long-poll parameters. The buffers absorb
// bursts between stages without building an unbounded in-memory backlog;
// unparsed events stay on the queue instead.
const (
	stageBufferSize    = 100
	receiveMaxMessages = 10
	receiveWaitSeconds = 20
)

// Consumer runs the marketing event pipeline: receive raw queue messages,
// parse and validate them into events, batch-write them to storage.
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
}

// NewConsumer wires the pipeline stages from configuration
func NewConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, repo repository.EventRepository, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     receiveMaxMessages,
		WaitTimeSeconds: receiveWaitSeconds,
		BufferSize:      stageBufferSize,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONEventParser(), log)

	batchWriter := NewBatchWriter(repo, BatchWriterConfig{
		MaxBatchSize: cfg.Consumer.BatchSizeMax,
		FlushTimeout: time.Duration(cfg.Consumer.BatchTimeoutSec) * time.Second,
	}, log)

	return &Consumer{
		receiver:    receiver,
		parser:      parser,
		batchWriter: batchWriter,
	}
}

// Start runs all stages until the context is cancelled. Each stage closes
// its output channel on shutdown, so cancellation drains front to back.
func (c *Consumer) Start(ctx context.Context) error {
	rawMessages := make(chan types.Message, stageBufferSize)
	envelopes := make(chan *Envelope, stageBufferSize)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, rawMessages)
	}()

	go func() {
		defer wg.Done()
		c.parser.Start(ctx, rawMessages, envelopes)
	}()

	go func() {
		defer wg.Done()
		c.batchWriter.Start(ctx, envelopes)
	}()

	wg.Wait()
	return nil
}
