package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader pushes local image files to Cloudinary and returns their public
// HTTPS URLs.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

func NewUploader(cloudName, apiKey, apiSecret string) (*Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are incomplete")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Uploader{cld: cld}, nil
}

// NewUploaderFromEnv reads CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and
// CLOUDINARY_API_SECRET.
func NewUploaderFromEnv() (*Uploader, error) {
	return NewUploader(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// Upload pushes the file and deletes the local copy on success. A failed
// deletion does not mask a successful upload; a failed upload leaves the
// local file in place.
func (u *Uploader) Upload(ctx context.Context, filePath string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no URL")
	}

	if err := os.Remove(filePath); err != nil {
		log.Println("Failed to remove temp image after upload:", err)
	}

	return result.SecureURL, nil
}
