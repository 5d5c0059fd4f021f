// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a product record as persisted.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       int64
	Description string
	Image       string
	PostID      string
	Status      bool
	CreatedAt   time.Time
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Create adds a new product. Image, post ID and status start at their
	// zero values: no image, unpublished.
	Create(ctx context.Context, name string, price int64, description string) (*Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns all products, newest first.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByStatus returns all products with the given publication status, newest first.
	FindByStatus(ctx context.Context, status bool) ([]Product, error)

	// Update modifies a product's name, price and description.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, name string, price int64, description string) (*Product, error)

	// UpdateImage replaces the stored image reference.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateImage(ctx context.Context, id uuid.UUID, image string) (*Product, error)

	// UpdateDescription modifies only the description.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*Product, error)

	// Publish sets the post ID and flips status to true in a single write,
	// keeping the two fields consistent.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Publish(ctx context.Context, id uuid.UUID, postID string) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
