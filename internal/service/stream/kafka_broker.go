package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	myconfig "juntos_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker routes published events through a Kafka topic before
// fan-out, so every instance of the server delivers every message to its
// local subscribers. Local distribution is delegated to an embedded
// ChannelBroker.
type KafkaBroker struct {
	local    *ChannelBroker
	producer *kafka.Writer
	consumer *kafka.Reader

	closeOnce sync.Once
	done      chan struct{}
}

// NewKafkaBroker builds the writer and reader from brokerConfig.
func NewKafkaBroker() *KafkaBroker {
	conf := myconfig.GetConfig().BrokerConfig
	return &KafkaBroker{
		local: NewChannelBroker(),
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.MessageTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           conf.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.MessageTopic,
			CommitInterval: conf.Timeout * time.Second,
			GroupID:        "juntos_stream",
			StartOffset:    kafka.LastOffset,
		}),
		done: make(chan struct{}),
	}
}

// Publish writes the event to the topic. Delivery to subscribers happens
// when the consume loop reads it back.
func (b *KafkaBroker) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Message.Uuid),
		Value: value,
	})
}

// Subscribe implements Broker via the local fan-out.
func (b *KafkaBroker) Subscribe(groupID uint) *Subscription {
	return b.local.Subscribe(groupID)
}

// Unsubscribe implements Broker via the local fan-out.
func (b *KafkaBroker) Unsubscribe(sub *Subscription) {
	b.local.Unsubscribe(sub)
}

// Start runs the local fan-out loop and the Kafka consume loop. Events
// read from the topic are re-published into the local broker.
func (b *KafkaBroker) Start() {
	go b.local.Start()

	for {
		select {
		case <-b.done:
			return
		default:
		}

		msg, err := b.consumer.ReadMessage(context.Background())
		if err != nil {
			select {
			case <-b.done:
				return
			default:
			}
			zap.L().Error("kafka read message", zap.Error(err))
			continue
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			zap.L().Error("kafka decode event", zap.Error(err))
			continue
		}
		if err := b.local.Publish(context.Background(), event); err != nil {
			zap.L().Error("kafka local publish", zap.Error(err))
		}
	}
}

// Close shuts down the consume loop, the Kafka resources and the local
// fan-out.
func (b *KafkaBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		if err := b.producer.Close(); err != nil {
			zap.L().Error("close kafka producer", zap.Error(err))
		}
		if err := b.consumer.Close(); err != nil {
			zap.L().Error("close kafka consumer", zap.Error(err))
		}
		b.local.Close()
	})
}
