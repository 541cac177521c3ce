package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
)

// Cloudinary resource types. PDFs are stored raw so they are served
// byte-for-byte.
const (
	resourceImage = "image"
	resourceRaw   = "raw"
)

// CloudinaryAssets stores catalog uploads in a Cloudinary account.
type CloudinaryAssets struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary configures the backend from a cloudinary:// URL.
func NewCloudinary(cloudinaryURL string) (*CloudinaryAssets, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryAssets{cld: cld}, nil
}

// UploadImage validates and uploads an image, returning its secure URL.
func (a *CloudinaryAssets) UploadImage(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	if _, _, err := checkImage(f); err != nil {
		return "", err
	}
	return a.upload(ctx, f, folder, uuid.New().String(), resourceImage)
}

// UploadPDF validates and uploads a PDF, returning its secure URL.
func (a *CloudinaryAssets) UploadPDF(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	if err := checkPDF(f); err != nil {
		return "", err
	}
	return a.upload(ctx, f, folder, uuid.New().String()+".pdf", resourceRaw)
}

func (a *CloudinaryAssets) upload(ctx context.Context, f *catalog.Upload, folder, publicID, resourceType string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, bytes.NewReader(f.Data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceType,
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s/%s: %w", folder, publicID, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s/%s: %s", folder, publicID, result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete destroys the asset behind a Cloudinary delivery URL.
func (a *CloudinaryAssets) Delete(ctx context.Context, rawURL string) error {
	publicID, resourceType, ok := cloudinaryPublicID(rawURL)
	if !ok {
		return fmt.Errorf("cloudinary delete %s: %w", rawURL, ErrForeignURL)
	}
	result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary delete %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary delete %s: %s", publicID, result.Error.Message)
	}
	return nil
}

// cloudinaryPublicID parses
// https://res.cloudinary.com/{cloud}/{resource_type}/upload/[v{n}/]{public_id}[.{ext}].
// Image public IDs drop the extension; raw ones keep it.
func cloudinaryPublicID(rawURL string) (publicID, resourceType string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != "res.cloudinary.com" {
		return "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "upload" {
		return "", "", false
	}
	resourceType = parts[1]
	rest := parts[3:]
	if len(rest) > 1 && isVersion(rest[0]) {
		rest = rest[1:]
	}
	publicID = strings.Join(rest, "/")
	if resourceType != resourceRaw {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	if publicID == "" {
		return "", "", false
	}
	return publicID, resourceType, true
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
