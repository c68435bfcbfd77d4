package scanning

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Scanner interface with a local libtesseract via gosseract
type Tesseract struct {
	languages     []string
	grayscale     bool
	clientFactory func() *gosseract.Client
}

var _ Scanner = (*Tesseract)(nil)

// NewTesseract creates a Tesseract scanner. languages are tesseract codes such as "eng";
// grayscale flattens images before recognition.
func NewTesseract(languages []string, grayscale bool) *Tesseract {
	return &Tesseract{
		languages:     languages,
		grayscale:     grayscale,
		clientFactory: gosseract.NewClient,
	}
}

// ReadText runs tesseract over a single image. A client is created per call
// because gosseract clients are not safe for concurrent use.
func (t *Tesseract) ReadText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	finalImageData, _, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return "", err
	}
	if t.grayscale {
		finalImageData, err = grayscalePNG(finalImageData)
		if err != nil {
			return "", fmt.Errorf("preprocessing image: %w", err)
		}
	}

	client := t.clientFactory()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(finalImageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// Close is a no-op, clients are released after every call
func (t *Tesseract) Close() error {
	return nil
}
