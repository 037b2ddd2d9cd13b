package push

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// KafkaSource reads push payloads from the platform's push topic. One
// consumer group per installed shell, so every instance sees every
// message.
type KafkaSource struct {
	reader *kafka.Reader
}

func NewKafkaSource(brokers []string, topic, groupID string) *KafkaSource {
	return &KafkaSource{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 1 << 20,
		}),
	}
}

func (s *KafkaSource) ReadMessage(ctx context.Context) ([]byte, error) {
	m, err := s.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
