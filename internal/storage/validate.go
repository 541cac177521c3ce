package storage

import (
	"bytes"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg"
	_ "image/png" // register PNG decoder
	"net/http"

	_ "golang.org/x/image/webp" // register WebP decoder

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

const (
	// MaxImageSize is the largest accepted image upload (10 MB).
	MaxImageSize = 10 << 20

	// MaxPDFSize is the largest accepted datasheet upload (20 MB).
	MaxPDFSize = 20 << 20

	// maxImagePixels caps decoded dimensions to refuse decompression bombs.
	maxImagePixels = 50_000_000
)

// imageTypes maps accepted image MIME types to their file extension.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// checkImage sniffs f and verifies it decodes as a supported image. It
// returns the content type and the extension to store it under.
func checkImage(f *catalog.Upload) (contentType, ext string, err error) {
	if len(f.Data) == 0 {
		return "", "", models.Invalid("file", "File is empty")
	}
	if len(f.Data) > MaxImageSize {
		return "", "", models.Invalid("file", "Image is too large (max 10 MB)")
	}

	contentType = http.DetectContentType(f.Data)
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", "", models.Invalid("file", "Image must be JPEG, PNG, GIF or WebP")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return "", "", models.Invalid("file", "Image could not be decoded")
	}
	if cfg.Width*cfg.Height > maxImagePixels {
		return "", "", models.Invalid("file", "Image dimensions are too large")
	}
	return contentType, ext, nil
}

// checkPDF verifies f sniffs as a PDF document.
func checkPDF(f *catalog.Upload) error {
	if len(f.Data) == 0 {
		return models.Invalid("file", "File is empty")
	}
	if len(f.Data) > MaxPDFSize {
		return models.Invalid("file", "PDF is too large (max 20 MB)")
	}
	if http.DetectContentType(f.Data) != "application/pdf" {
		return models.Invalid("file", "File must be a PDF")
	}
	return nil
}
