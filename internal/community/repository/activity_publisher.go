package repository

import (
	"context"
	"encoding/json"

	"alumni_portal_service/internal/community/domain"

	"github.com/segmentio/kafka-go"
)

// ActivityPublisher definition community activity event sink
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent) error
}

type kafkaActivityPublisher struct {
	writer *kafka.Writer
}

// NewKafkaActivityPublisher create ActivityPublisher backed by kafka
func NewKafkaActivityPublisher(writer *kafka.Writer) ActivityPublisher {
	return &kafkaActivityPublisher{writer: writer}
}

// Publish 將活動事件送進 kafka，key 用事件類型讓同類事件進同一分區
func (p *kafkaActivityPublisher) Publish(event domain.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Type),
		Value: data,
	})
}
