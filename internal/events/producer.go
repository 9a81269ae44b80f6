// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: the order service logs failures and never fails a request on
// a broker error.
package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	OrderPlacedTopic = "order.placed"
	OrderPaidTopic   = "order.paid"
	OrderStatusTopic = "order.status"
)

// OrderEvent describes one order lifecycle change. EventID is assigned at
// publish time so consumers can deduplicate across producer retries.
type OrderEvent struct {
	EventID       string    `json:"event_id"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status,omitempty"`
	EventTime     time.Time `json:"event_time"`
}

// Publisher is what the order service depends on; a nil publisher disables
// event publishing entirely.
type Publisher interface {
	PublishOrderPlaced(event OrderEvent) error
	PublishOrderPaid(event OrderEvent) error
	PublishOrderStatus(event OrderEvent) error
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewKafkaProducer(brokers string, logger *logrus.Logger) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, err
	}

	return &KafkaProducer{
		producer: producer,
		logger:   logger,
	}, nil
}

func (p *KafkaProducer) PublishOrderPlaced(event OrderEvent) error {
	return p.publish(OrderPlacedTopic, event)
}

func (p *KafkaProducer) PublishOrderPaid(event OrderEvent) error {
	return p.publish(OrderPaidTopic, event)
}

func (p *KafkaProducer) PublishOrderStatus(event OrderEvent) error {
	return p.publish(OrderStatusTopic, event)
}

func (p *KafkaProducer) publish(topic string, event OrderEvent) error {
	event.EventID = uuid.New().String()
	event.EventTime = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithField("topic", topic).Error("Failed to send message to Kafka")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     topic,
		"partition": partition,
		"offset":    offset,
		"order_id":  event.OrderID,
	}).Info("Event published to Kafka")

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
