package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// auditRecord is the subset of a product event the audit log needs.
type auditRecord struct {
	Type      string `json:"type"`
	ProductID string `json:"productId"`
}

// AuditLogger returns a message handler that logs each product event.
// Bodies that are not JSON product events are rejected.
func AuditLogger(logger *log.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var rec auditRecord
		if err := json.Unmarshal(msg.Body, &rec); err != nil {
			return fmt.Errorf("malformed product event: %w", err)
		}
		if rec.Type == "" || rec.ProductID == "" {
			return fmt.Errorf("product event missing type or productId")
		}
		logger.Printf("Product event %s for %s (tag %d)", rec.Type, rec.ProductID, msg.DeliveryTag)
		return nil
	}
}
