// Package publisher emits accepted transfers to Kafka so downstream indexers
// can follow the log without polling.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"fname-registry/internal/platform/config"
	"fname-registry/internal/transfers/models"
	"fname-registry/pkg/platform/circuit"
)

// EventTransferAccepted is the only event type on the transfers topic.
const EventTransferAccepted = "transfer.accepted"

// Event is the JSON payload of one record, keyed by username so a name's
// history stays within one partition.
type Event struct {
	Type     string                  `json:"type"`
	Transfer models.TransferResponse `json:"transfer"`
}

// ErrCircuitOpen is returned without contacting the brokers while recent
// deliveries have been failing.
var ErrCircuitOpen = errors.New("transfer publishing suspended: circuit open")

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher writes transfer events to one topic.
type Publisher struct {
	client  producer
	topic   string
	logger  *slog.Logger
	breaker *circuit.Breaker
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for delivery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithBreaker replaces the default delivery circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

// New connects to the configured brokers and makes sure the topic exists.
func New(ctx context.Context, cfg config.KafkaConfig, opts ...Option) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.TransfersTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := ensureTopic(ctx, kadm.NewClient(client), cfg.TransfersTopic, cfg.Partitions); err != nil {
		client.Close()
		return nil, err
	}
	return newPublisher(client, cfg.TransfersTopic, opts...), nil
}

func newPublisher(client producer, topic string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		topic:  topic,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.breaker == nil {
		p.breaker = circuit.New("kafka:"+topic,
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(1),
			circuit.WithCooldown(10*time.Second),
		)
	}
	return p
}

func ensureTopic(ctx context.Context, adm *kadm.Client, topic string, partitions int32) error {
	if partitions <= 0 {
		partitions = 1
	}
	resp, err := adm.CreateTopics(ctx, partitions, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// PublishTransfer writes one accepted transfer and waits for the broker ack.
func (p *Publisher) PublishTransfer(ctx context.Context, t *models.Transfer) error {
	if !p.breaker.Allow() {
		return ErrCircuitOpen
	}
	payload, err := json.Marshal(Event{
		Type:     EventTransferAccepted,
		Transfer: models.NewTransferResponse(t),
	})
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(t.Username),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "transfer publishing suspended after repeated failures",
				"topic", p.topic,
				"error", err,
			)
		}
		return fmt.Errorf("publish transfer %d: %w", t.ID, err)
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "transfer publishing resumed", "topic", p.topic)
	}
	p.logger.DebugContext(ctx, "transfer event published",
		"transfer_id", t.ID,
		"topic", p.topic,
	)
	return nil
}

// Close flushes and releases the Kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}
