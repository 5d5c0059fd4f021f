package messaging

// Subjects for product lifecycle events.
const (
	ProductsCreatedSubject   = "products.created"
	ProductsPublishedSubject = "products.published"
)
