// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tamnd/productsvc/internal/storage"
	"github.com/tamnd/productsvc/internal/store"
	"github.com/tamnd/productsvc/pkg/messaging"
	"github.com/tamnd/productsvc/pkg/messaging/events"
)

// ProductService defines the methods for managing products and their images.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create adds a new product with no image and unpublished state.
	// Returns a ValidationError if the name is empty or the price is not positive.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// FindAll returns all products in the reduced list view with a count.
	FindAll(ctx context.Context) (*ProductListDto, error)

	// FindPending returns all unpublished products in the reduced list view with a count.
	FindPending(ctx context.Context) (*ProductListDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Update applies a full or partial update of name, price and description.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, update ProductUpdateDto) (*ProductDto, error)

	// UpdateDescription modifies only the description. Any text is accepted.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*ProductDto, error)

	// Publish records the external post ID and flips the product to published.
	// This is the only transition out of the pending state and it is one-way.
	// Returns a ValidationError if postID is blank after trimming.
	Publish(ctx context.Context, id uuid.UUID, postID string) (*ProductDto, error)

	// UploadImage validates, stores and attaches an image to the product,
	// replacing and best-effort deleting any previous one.
	// Returns ErrStorageWrite if the object store rejects the new image.
	UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*ImageUploadResultDto, error)

	// DeleteByID removes a product and best-effort deletes its stored image.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	objects    storage.ObjectStore
	publisher  messaging.Publisher
}

// NewService creates a new instance of ProductService with the provided
// repository, object store client and event publisher.
func NewService(repo store.ProductStore, objects storage.ObjectStore, publisher messaging.Publisher) *Service {
	return &Service{
		repository: repo,
		objects:    objects,
		publisher:  publisher,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string `json:"name"        validate:"required"`
	Price       int64  `json:"price"       validate:"required,gt=0"`
	Description string `json:"description"`
}

// ProductDto represents the full view of a product, including the post ID.
type ProductDto struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PostID      string `json:"post_id"`
	Status      bool   `json:"status"`
}

// ProductListItemDto is the reduced view used in listings; it hides the post ID.
type ProductListItemDto struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      bool   `json:"status"`
}

// ProductListDto wraps list results with a count.
type ProductListDto struct {
	Count   int                  `json:"count"`
	Results []ProductListItemDto `json:"results"`
}

// ProductUpdateDto carries a full or partial update; nil fields are left unchanged.
type ProductUpdateDto struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Description *string `json:"description"`
}

// ImageUpload carries an image payload received from a client.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// ImageUploadResultDto is the response of a successful image upload.
type ImageUploadResultDto struct {
	ID      string `json:"id"`
	Image   string `json:"image"`
	Message string `json:"message"`
}

// Create validates the input and persists a new product with empty image,
// empty post ID and status false.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := validateName(product.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(product.Price); err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, product.Name, product.Price, product.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.ProductCreatedEvent{
		ProductID: created.ID,
		Name:      created.Name,
		Price:     created.Price,
		CreatedAt: created.CreatedAt,
	})

	return toDto(created), nil
}

// FindAll retrieves all products as the reduced list view with a count.
func (s *Service) FindAll(ctx context.Context) (*ProductListDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toListDto(products), nil
}

// FindPending retrieves all products with status false as the reduced list view.
func (s *Service) FindPending(ctx context.Context) (*ProductListDto, error) {
	products, err := s.repository.FindByStatus(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending products: %w", err)
	}
	return toListDto(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toDto(product), nil
}

// Update applies the provided fields on top of the current record and persists
// the result. Fields left nil keep their current values. Price is deliberately
// not re-validated here; it is only enforced at creation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update ProductUpdateDto) (*ProductDto, error) {
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	name := current.Name
	if update.Name != nil {
		name = *update.Name
	}
	price := current.Price
	if update.Price != nil {
		price = *update.Price
	}
	description := current.Description
	if update.Description != nil {
		description = *update.Description
	}

	updated, err := s.repository.Update(ctx, id, name, price, description)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// UpdateDescription modifies only the description of a product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*ProductDto, error) {
	updated, err := s.repository.UpdateDescription(ctx, id, description)
	if err != nil {
		return nil, fmt.Errorf("failed to update description for product with ID %s: %w", id, err)
	}
	return toDto(updated), nil
}

// Publish validates the post ID and records it together with status=true in a
// single store write, so the two fields can never diverge.
func (s *Service) Publish(ctx context.Context, id uuid.UUID, postID string) (*ProductDto, error) {
	if err := validatePostID(postID); err != nil {
		return nil, err
	}

	published, err := s.repository.Publish(ctx, id, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to publish product with ID %s: %w", id, err)
	}

	s.publish(ctx, events.ProductPublishedEvent{
		ProductID:   published.ID,
		PostID:      published.PostID,
		PublishedAt: time.Now(),
	})

	return toDto(published), nil
}

// UploadImage attaches a new image to the product. The ordering is fixed:
// the new object is written and confirmed first, then the record is updated,
// and only then is the previous object deleted, best-effort. A failure in the
// middle can at worst orphan a blob in storage; the record never ends up
// pointing at an object that was not stored.
func (s *Service) UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*ImageUploadResultDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	if err := validateImage(upload.Filename, upload.Size); err != nil {
		return nil, err
	}

	newURL, err := s.objects.Store(ctx, upload.Reader, upload.Filename, upload.ContentType, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store image for product with ID %s: %w", id, err)
	}

	updated, err := s.repository.UpdateImage(ctx, id, newURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update image for product with ID %s: %w", id, err)
	}

	// The new image is committed; removing the replaced one is cleanup only.
	if product.Image != "" {
		if err := s.objects.Delete(ctx, product.Image); err != nil {
			slog.WarnContext(ctx, "Failed to delete replaced product image",
				"product_id", id, "image", product.Image, "error", err)
		}
	}

	return &ImageUploadResultDto{
		ID:      updated.ID.String(),
		Image:   updated.Image,
		Message: "image uploaded successfully",
	}, nil
}

// DeleteByID removes the product record, best-effort deleting its stored
// image first. A storage failure is logged and never blocks record deletion.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	if product.Image != "" {
		if err := s.objects.Delete(ctx, product.Image); err != nil {
			slog.WarnContext(ctx, "Failed to delete product image",
				"product_id", id, "image", product.Image, "error", err)
		}
	}

	return s.repository.DeleteByID(ctx, id)
}

// publish sends an event best-effort; failures are logged, never propagated.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID.String(),
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Image:       product.Image,
		PostID:      product.PostID,
		Status:      product.Status,
	}
}

// toListDto converts store products to the reduced list view with a count.
func toListDto(products []store.Product) *ProductListDto {
	results := make([]ProductListItemDto, len(products))
	for i, p := range products {
		results[i] = ProductListItemDto{
			ID:          p.ID.String(),
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Image:       p.Image,
			Status:      p.Status,
		}
	}
	return &ProductListDto{
		Count:   len(results),
		Results: results,
	}
}
