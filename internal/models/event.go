package models

import "time"

// ProductEventType names a change in a product's lifecycle.
type ProductEventType string

const (
	ProductCreated             ProductEventType = "product.created"
	ProductUpdated             ProductEventType = "product.updated"
	ProductAvailabilityToggled ProductEventType = "product.availability_toggled"
	ProductDeleted             ProductEventType = "product.deleted"
)

// ProductEvent is published after a product change has been persisted.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	Product    Product          `json:"product"`
	OccurredAt time.Time        `json:"occurredAt"`
}
