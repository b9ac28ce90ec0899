package kafka

import "time"

type EventType string

const (
	EventTypeAddToCart EventType = "addToCart"
	EventTypeView      EventType = "view"
	EventTypeCheckout  EventType = "checkout"
)

// Event - событие взаимодействия клиента с корзиной для аналитики
type Event struct {
	ClientID  string    `json:"client_id"`
	Type      EventType `json:"type"`
	ProductID string    `json:"product_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
