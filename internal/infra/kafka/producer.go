package kafka

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/infra/config"
)

// Producer wraps the Sarama async producer. Delivery errors are drained in a
// background goroutine; the async producer deadlocks if nobody reads them.
type Producer struct {
	async       sarama.AsyncProducer
	log         *zap.Logger
	topicPrefix string
	stop        chan struct{}
}

// NewProducer connects an async producer to the configured brokers.
func NewProducer(cfg config.KafkaSettings, log *zap.Logger) (*Producer, error) {
	async, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := &Producer{
		async:       async,
		log:         log,
		topicPrefix: cfg.TopicPrefix,
		stop:        make(chan struct{}),
	}
	go p.drainErrors()

	log.Info("kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic_prefix", cfg.TopicPrefix))

	return p, nil
}

func saramaConfig() *sarama.Config {
	sc := sarama.NewConfig()
	sc.Version = sarama.V3_5_0_0

	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Producer.Flush.Frequency = 100 * time.Millisecond
	sc.Producer.Flush.Messages = 100
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = false
	sc.Producer.Return.Errors = true

	sc.Metadata.Retry.Max = 3
	sc.Metadata.Retry.Backoff = 250 * time.Millisecond

	return sc
}

func (p *Producer) drainErrors() {
	for {
		select {
		case err, ok := <-p.async.Errors():
			if !ok {
				return
			}
			p.log.Error("kafka delivery failed",
				zap.Error(err.Err),
				zap.String("topic", err.Msg.Topic))
		case <-p.stop:
			return
		}
	}
}

// Producer exposes the underlying async producer for message input.
func (p *Producer) Producer() sarama.AsyncProducer {
	return p.async
}

// TopicName prepends the configured topic prefix.
func (p *Producer) TopicName(eventType string) string {
	if p.topicPrefix == "" {
		return eventType
	}
	return p.topicPrefix + "." + eventType
}

// Close flushes pending messages and shuts the producer down.
func (p *Producer) Close() error {
	p.log.Info("closing kafka producer")
	close(p.stop)

	if err := p.async.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}
