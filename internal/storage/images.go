package storage

import (
	"context"
	"errors"
	"io"

	"vetclinic-app-server/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no CLOUDINARY_URL was provided.
var ErrNotConfigured = errors.New("image storage is not configured")

// ImageStore uploads images to Cloudinary and returns their secure URLs.
// The database only ever stores URLs, never file bytes.
type ImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewImageStore builds an ImageStore from configuration. A missing
// CLOUDINARY_URL yields a store whose uploads fail with ErrNotConfigured,
// so the rest of the API keeps working without credentials.
func NewImageStore(cfg config.CloudinaryConfig) (*ImageStore, error) {
	if cfg.URL == "" {
		return &ImageStore{folder: cfg.UploadFolder}, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &ImageStore{cld: cld, folder: cfg.UploadFolder}, nil
}

// UploadImage uploads the file under a generated public id and returns the
// secure URL. prefix groups uploads by feature (e.g. "pet", "diary").
func (s *ImageStore) UploadImage(ctx context.Context, file io.Reader, prefix string) (string, error) {
	if s.cld == nil {
		return "", ErrNotConfigured
	}

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: prefix + "-" + uuid.New().String(),
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
