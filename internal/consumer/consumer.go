package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/service"
)

// Consumer adjusts catalog stock from order lifecycle events: created
// reserves the ordered quantities, cancelled releases them.
type Consumer struct {
	catalog *service.CatalogService
}

func NewConsumer(catalog *service.CatalogService) *Consumer {
	return &Consumer{catalog: catalog}
}

// StartKafkaConsumer blocks reading the order topic; run it in a goroutine.
func (c *Consumer) StartKafkaConsumer() {
	orderReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  config.KafkaBrokerURLs(),
		Topic:    config.OrderTopic,
		GroupID:  "storefront-stock-group",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	for {
		ctx := context.Background()
		msg, err := orderReader.ReadMessage(ctx)
		if err != nil {
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}
		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var order entity.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	// key -> "order.created.<id>" or "order.cancelled.<id>"
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) < 2 {
		log.Error().Msgf("Malformed event key: %s", msg.Key)
		return
	}
	eventType := parts[1]

	switch eventType {
	case "created":
		for _, item := range order.Items {
			if err := c.catalog.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
				log.Error().Msgf("Error updating stock for product %d: %v", item.ProductID, err)
			}
		}
	case "cancelled":
		for _, item := range order.Items {
			if err := c.catalog.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				log.Error().Msgf("Error updating stock for product %d: %v", item.ProductID, err)
			}
		}
	case "updated":
		// Status edits other than cancellation do not move stock.
	default:
		log.Error().Msgf("Unknown order event: %s", msg.Key)
	}
}
