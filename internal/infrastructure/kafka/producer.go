package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const (
	producerBatchSize    = 10
	producerBatchTimeout = 500 * time.Millisecond
	producerWriteTimeout = 10 * time.Second
)

// Producer публикует события изменения каталога в топик Kafka.
// Ключом сообщения служит ID товара: hash-балансировка кладёт все
// события одного товара в одну партицию и сохраняет их порядок.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	p := &Producer{
		logger: logger,
		cfg:    cfg,
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    producerBatchSize,
		BatchTimeout: producerBatchTimeout,
		WriteTimeout: producerWriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("kafka producer: async write failed: %v", err)
			}
		},
	}

	return p, nil
}

func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.ProductID),
		Value: req.Payload,
	})
}

// EnsureTopic создаёт топик, если его ещё нет. CreateTopics у kafka-go
// не принимает контекст, поэтому таймаут реализован вручную.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	if parts, err := conn.ReadPartitions(p.cfg.Topic); err == nil && len(parts) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("create topic %s: no response within %v", p.cfg.Topic, timeout))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
