package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
	_ "golang.org/x/image/webp" // Register WEBP decoder
)

// pdfToImage renders the first page of a PDF
func pdfToImage(pdfData []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	// Product sheets put the size table on the first page
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

// DecodeImage decodes JPEG, PNG, WEBP, GIF, HEIC/HEIF and PDF uploads.
// Every failure wraps ErrUnreadableImage.
func DecodeImage(imageData []byte, mimeType string) (image.Image, error) {
	mimeType = normalizeMimeType(mimeType)

	if mimeType == "application/pdf" || isPDFFormat(imageData) {
		img, err := pdfToImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreadableImage, err)
		}
		return img, nil
	}

	// Go's standard image package doesn't support HEIC
	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err := heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC/HEIF image: %w", ErrUnreadableImage, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		if strings.Contains(err.Error(), "unknown format") || strings.Contains(err.Error(), "unsupported") {
			return nil, fmt.Errorf("%w: unsupported image format (supported: JPEG, PNG, WEBP, GIF, HEIC, HEIF, PDF): %w", ErrUnreadableImage, err)
		}
		return nil, fmt.Errorf("%w: decoding image: %w", ErrUnreadableImage, err)
	}
	return img, nil
}

// encodePNG encodes an image as PNG
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPNG converts any supported upload to PNG
func ToPNG(imageData []byte, mimeType string) ([]byte, error) {
	img, err := DecodeImage(imageData, mimeType)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// Preview converts an upload to PNG for inline display, downscaling it to
// maxWidth pixels when it is wider. A maxWidth of 0 keeps the original size.
func Preview(imageData []byte, mimeType string, maxWidth int) ([]byte, error) {
	img, err := DecodeImage(imageData, mimeType)
	if err != nil {
		return nil, err
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	return encodePNG(img)
}

// grayscalePNG flattens a PNG to grayscale, which helps tesseract on colored size charts
func grayscalePNG(pngData []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decoding PNG: %w", err)
	}
	return encodePNG(imaging.Grayscale(img))
}

// isHEICFormat checks if the image data is in HEIC/HEIF format
// HEIC files typically start with specific magic bytes
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	// ftyp box at offset 4 with brand 'heic', 'heif', 'mif1' or 'msf1'
	if string(data[4:8]) == "ftyp" {
		brand := string(data[8:12])
		if brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1" {
			return true
		}
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = normalizeMimeType(mimeType)
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// isPDFFormat checks for the %PDF- header
func isPDFFormat(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// prepareImageData converts the upload to PNG unless it already is one.
// Returns the final image data, the MIME type to use, and whether conversion occurred
func prepareImageData(imageData []byte, contentType string) ([]byte, string, bool, error) {
	mimeType := normalizeMimeType(contentType)
	if mimeType == "" {
		mimeType = "image/jpeg" // default
	}

	if mimeType == "image/png" && !isHEICFormat(imageData) {
		// Still validate so a renamed file fails here and not inside the engine
		if _, err := png.DecodeConfig(bytes.NewReader(imageData)); err != nil {
			return nil, "", false, fmt.Errorf("%w: decoding PNG: %w", ErrUnreadableImage, err)
		}
		return imageData, "image/png", false, nil
	}

	pngData, err := ToPNG(imageData, mimeType)
	if err != nil {
		return nil, "", false, fmt.Errorf("converting image to PNG: %w", err)
	}
	return pngData, "image/png", true, nil
}
