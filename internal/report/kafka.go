package report

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/internal/analyzer/concordance"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/kafka"
)

// EntryEvent is the value of one Kafka message.
type EntryEvent struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Rank        int       `json:"rank"`
	concordance.Entry
}

type batchPublisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
	Close() error
}

// KafkaSink publishes one message per entry, keyed by word, in one batch.
type KafkaSink struct {
	producer batchPublisher
}

// NewKafkaSink returns a sink that publishes through producer.
func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

// Name returns "kafka".
func (s *KafkaSink) Name() string { return "kafka" }

// Write publishes every entry of r as one batch.
func (s *KafkaSink) Write(ctx context.Context, r *Report) error {
	return s.producer.PublishBatch(ctx, entryEvents(r))
}

// Close closes the producer.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}

func entryEvents(r *Report) []kafka.Event {
	events := make([]kafka.Event, len(r.Entries))
	for i, e := range r.Entries {
		events[i] = kafka.Event{
			Key: e.Word,
			Value: EntryEvent{
				RunID:       r.RunID,
				GeneratedAt: r.GeneratedAt,
				Rank:        i + 1,
				Entry:       e,
			},
		}
	}
	return events
}
