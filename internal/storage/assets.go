// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
)

// ErrForeignURL is returned when asked to delete a URL this backend did
// not issue.
var ErrForeignURL = errors.New("url does not belong to this storage")

// S3Assets stores catalog uploads in an S3 bucket.
type S3Assets struct {
	client *Client
	now    func() time.Time
}

// NewS3Assets returns catalog asset storage backed by client.
func NewS3Assets(client *Client) *S3Assets {
	return &S3Assets{client: client, now: time.Now}
}

// objectKey builds {folder}/{yyyy}/{mm}/{uuid}{ext}.
func objectKey(folder, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), now.Month(), uuid.New().String(), ext)
}

// UploadImage validates and stores an image, returning its public URL.
func (a *S3Assets) UploadImage(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	contentType, ext, err := checkImage(f)
	if err != nil {
		return "", err
	}
	return a.put(ctx, f, folder, contentType, ext)
}

// UploadPDF validates and stores a PDF, returning its public URL.
func (a *S3Assets) UploadPDF(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	if err := checkPDF(f); err != nil {
		return "", err
	}
	return a.put(ctx, f, folder, "application/pdf", ".pdf")
}

func (a *S3Assets) put(ctx context.Context, f *catalog.Upload, folder, contentType, ext string) (string, error) {
	key := objectKey(folder, ext, a.now())
	if err := a.client.Upload(ctx, key, contentType, bytes.NewReader(f.Data), int64(len(f.Data))); err != nil {
		return "", err
	}
	return a.client.FileURL(key), nil
}

// Delete removes the object behind url.
func (a *S3Assets) Delete(ctx context.Context, url string) error {
	key, ok := a.client.ExtractS3Key(url)
	if !ok {
		return fmt.Errorf("s3 delete %s: %w", url, ErrForeignURL)
	}
	return a.client.Delete(ctx, key)
}
