package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher ships outbox entries to the audit sink.
type Publisher interface {
	Publish(ctx context.Context, entries []Entry) error
	Close()
}

// KafkaPublisher produces outbox entries onto one Kafka topic, keyed by
// aggregate id so events for the same subject stay ordered.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

// EnsureTopic creates the audit topic if the cluster does not have it yet.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(p.client)
	_, err := adm.CreateTopic(ctx, 1, -1, nil, p.topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	records := make([]*kgo.Record, len(entries))
	for i, e := range entries {
		records[i] = &kgo.Record{Key: []byte(e.AggregateID), Value: e.Payload}
	}
	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit batch: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
