package config

import (
	"os"
	"strings"

	"github.com/segmentio/kafka-go"
)

// OrderTopic carries order lifecycle events consumed by the stock consumer.
const OrderTopic = "order-topic"

// KafkaBrokerURLs reads KAFKA_BROKERS (comma separated) with a localhost
// default.
func KafkaBrokerURLs() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	return strings.Split(brokers, ",")
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(KafkaBrokerURLs()...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
