// Package events contains the event payloads published by the product service.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tamnd/productsvc/pkg/messaging"
)

type ProductCreatedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (p ProductCreatedEvent) Subject() string {
	return messaging.ProductsCreatedSubject
}

func (p ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(p)
}

// ProductPublishedEvent is emitted when a product receives a post ID and
// transitions to the published state.
type ProductPublishedEvent struct {
	ProductID   uuid.UUID `json:"product_id"`
	PostID      string    `json:"post_id"`
	PublishedAt time.Time `json:"published_at"`
}

func (p ProductPublishedEvent) Subject() string {
	return messaging.ProductsPublishedSubject
}

func (p ProductPublishedEvent) Payload() ([]byte, error) {
	return json.Marshal(p)
}
