package scanning

import (
	"context"
	"errors"
)

// ErrUnreadableImage is returned when an uploaded file cannot be decoded as an image
var ErrUnreadableImage = errors.New("unreadable image")

// Scanner defines the interface for OCR over product images
type Scanner interface {
	// ReadText runs OCR over an image/PDF and returns the recognized text, one line per row
	ReadText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}
