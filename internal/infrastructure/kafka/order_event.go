package publisher

import (
	"encoding/json"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

type OrderEvent struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	DeliveryMethod string `json:"delivery_method"`
	AmountRobux    int64  `json:"amount_robux"`
	PaidAmount     string `json:"paid_amount,omitempty"`
	PaidCurrency   string `json:"paid_currency,omitempty"`
}

// PublishOrder marshals the event and publishes it keyed by order id.
func PublishOrder(p domain.EventPublisher, topic string, event OrderEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(topic, domain.Message{Key: []byte(event.OrderID), Value: v})
}
