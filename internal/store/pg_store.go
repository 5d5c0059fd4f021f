package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	perrors "github.com/tamnd/productsvc/internal/errors"
)

const productColumns = "id, name, price, description, image, post_id, status, created_at"

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// Create adds a new product with empty image, empty post ID and status false.
func (p *PgStore) Create(ctx context.Context, name string, price int64, description string) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO products (name, price, description, image, post_id, status)
		 VALUES ($1, $2, $3, '', '', FALSE)
		 RETURNING `+productColumns,
		name, price, description)
	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all products, newest first.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// FindByStatus retrieves all products with the given publication status, newest first.
func (p *PgStore) FindByStatus(ctx context.Context, status bool) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE status = $1 ORDER BY created_at DESC`,
		status)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by status: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Update modifies a product's name, price and description.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id uuid.UUID, name string, price int64, description string) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products SET name = $2, price = $3, description = $4
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, name, price, description)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// UpdateImage replaces the stored image reference.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) UpdateImage(ctx context.Context, id uuid.UUID, image string) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products SET image = $2 WHERE id = $1 RETURNING `+productColumns,
		id, image)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}
	return product, nil
}

// UpdateDescription modifies only the description.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products SET description = $2 WHERE id = $1 RETURNING `+productColumns,
		id, description)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product description: %w", err)
	}
	return product, nil
}

// Publish sets the post ID and status in one UPDATE so the two fields can
// never be observed out of sync.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Publish(ctx context.Context, id uuid.UUID, postID string) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products SET post_id = $2, status = TRUE WHERE id = $1 RETURNING `+productColumns,
		id, postID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to publish product: %w", err)
	}
	return product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// scanProduct scans a single product row.
func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.PostID, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.PostID, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}
