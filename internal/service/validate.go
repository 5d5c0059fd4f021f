package service

import (
	"fmt"
	"path/filepath"
	"strings"

	perrors "github.com/tamnd/productsvc/internal/errors"
)

// maxImageSize is the largest accepted image payload: 5 MiB.
const maxImageSize = 5 * 1024 * 1024

// allowedImageExts is the whitelist of accepted image file extensions.
// The check is purely name-based; file content is not inspected.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// validateName fails if the product name is empty.
func validateName(name string) error {
	if name == "" {
		return perrors.NewValidationError("name", "name must not be empty")
	}
	return nil
}

// validatePrice fails if the price is not strictly positive.
func validatePrice(price int64) error {
	if price <= 0 {
		return perrors.NewValidationError("price", "price must be greater than zero")
	}
	return nil
}

// validateImage checks the upload payload size and file extension
// (case-insensitive). It does not look at the payload bytes.
func validateImage(filename string, size int64) error {
	if size > maxImageSize {
		return perrors.NewValidationError("image", "image size must not exceed 5MB")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return perrors.NewValidationError("image",
			fmt.Sprintf("unsupported file extension %q, allowed: .jpg, .jpeg, .png, .gif, .webp", ext))
	}
	return nil
}

// validatePostID fails if the post ID is empty or whitespace-only.
func validatePostID(postID string) error {
	if strings.TrimSpace(postID) == "" {
		return perrors.NewValidationError("post_id", "post_id must not be blank")
	}
	return nil
}
