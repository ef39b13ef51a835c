package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/streadway/amqp"
)

// AuditHandler returns a message handler that records each order event in the
// structured log. Messages that are not JSON objects are rejected.
func AuditHandler(logger *slog.Logger) func(amqp.Delivery) error {
	if logger == nil {
		logger = slog.Default()
	}
	return func(msg amqp.Delivery) error {
		var payload map[string]any
		if err := json.Unmarshal(msg.Body, &payload); err != nil {
			return fmt.Errorf("decode order event: %w", err)
		}
		logger.Info("order event received",
			"routing_key", msg.RoutingKey,
			"order_id", payload["orderId"],
			"status", payload["status"],
		)
		return nil
	}
}
