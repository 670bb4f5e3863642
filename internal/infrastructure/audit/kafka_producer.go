package audit

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/logger"
)

// KafkaProducer publishes audit events to the configured topic.
type KafkaProducer struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaProducer creates the Kafka-backed audit publisher.
func NewKafkaProducer(cfg config.KafkaConfig, log logger.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
	}
	return &KafkaProducer{
		writer: writer,
		logger: log.WithComponent("audit_kafka"),
	}
}

// LogEvent publishes the event keyed by actor so one user's events stay
// ordered within a partition.
func (p *KafkaProducer) LogEvent(ctx context.Context, event models.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal audit event", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ActorID.String()),
		Value: payload,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to publish audit event", err)
	}
	return err
}

// Close flushes and closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// Tee fans one audit event out to several sinks. The first error wins but
// every sink still sees the event.
type Tee struct {
	sinks []service.AuditService
}

// NewTee combines audit sinks into one AuditService.
func NewTee(sinks ...service.AuditService) service.AuditService {
	return &Tee{sinks: sinks}
}

func (t *Tee) LogEvent(ctx context.Context, event models.AuditEvent) error {
	var first error
	for _, sink := range t.sinks {
		if err := sink.LogEvent(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
