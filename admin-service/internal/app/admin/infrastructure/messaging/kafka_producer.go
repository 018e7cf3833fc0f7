package messaging

import (
	"context"
	"fmt"
	"time"

	"wayfarer/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer обертка над Kafka writer для отправки уведомлений
// Исходы admin-команд публикуются в топик admin_notifications, на который
// подписан коллаборатор отображения (toast в UI, алертинг)
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров в формате ["host:port"]
// topic - топик для событий уведомлений
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Уведомления одиночные и редкие, батч держим маленьким
		BatchSize:    10,
		BatchTimeout: time.Second,
	}

	return &KafkaProducer{writer: writer}
}

// PublishMessage отправляет сообщение в Kafka
// key - идентификатор события для партиционирования
// value - JSON сериализованный NotificationEvent
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError("admin-service", p.writer.Topic, "write")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced("admin-service", p.writer.Topic)
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
