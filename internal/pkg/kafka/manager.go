package kafka

import (
	"Credify/internal/api/config"
	"Credify/internal/repository"
	"Credify/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	snapshotConsumer sarama.ConsumerGroup
	snapshotHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	ingestSvc service.IngestService,
	creditRepo repository.ProjectCreditRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	snapshotConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaSnapshotConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	snapshotHandler := NewSnapshotHandler(ingestSvc, creditRepo)

	return &ConsumerManager{
		snapshotConsumer: snapshotConsumer,
		snapshotHandler:  snapshotHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Snapshot Consumer
	go func() {
		topic := cfg.KafkaSnapshotConsumer.Topic
		log.Info("Snapshot consumer started", "topic", topic)
		for {
			if err := m.snapshotConsumer.Consume(ctx, []string{topic}, m.snapshotHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.snapshotConsumer.Close(); err != nil {
		log.Error("Failed to close snapshot consumer", "err", err)
	}

	return nil
}
