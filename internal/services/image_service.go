package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/storage"
)

// allowedImageTypes maps accepted content types to the key extension.
var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/heic":    ".heic",
	"image/heif":    ".heic",
}

// ImageService stores one custom picture per aircraft.
type ImageService struct {
	aircraft *repositories.AircraftRepositoryGORM
	store    storage.ImageStore
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

func NewImageService(db *gorm.DB, store storage.ImageStore, m *metrics.MetricsRegistry) *ImageService {
	return &ImageService{
		aircraft: repositories.NewAircraftRepositoryGORM(db),
		store:    store,
		metrics:  m,
		now:      time.Now,
	}
}

// DetectImage sniffs data and returns the normalised content type and key
// extension, or ErrUnsupportedImage.
func DetectImage(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", constants.ErrNoImageSelected
	}
	if len(data) > constants.MaxImageBytes {
		return "", "", constants.ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedImageTypes[m.String()]; ok {
			return m.String(), ext, nil
		}
	}
	return "", "", constants.ErrUnsupportedImage
}

// Upload replaces the aircraft's image. The previous object is removed
// once the new key is saved.
func (s *ImageService) Upload(ctx context.Context, p auth.Principal, aircraftID string, data []byte) (string, error) {
	aircraft, err := s.aircraft.GetOwned(ctx, aircraftID, p.UserID)
	if err != nil {
		return "", err
	}

	contentType, ext, err := DetectImage(data)
	if err != nil {
		return "", err
	}

	key := aircraft.ID + "-" + strconv.FormatInt(s.now().UnixNano(), 10) + ext
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	oldKey := aircraft.ImageKey
	aircraft.ImageKey = &key
	if err := s.aircraft.Save(ctx, aircraft); err != nil {
		s.discard(ctx, key)
		return "", err
	}
	s.metrics.ImageStored(len(data))

	if oldKey != nil && *oldKey != key {
		s.discard(ctx, *oldKey)
	}

	logging.Info("Aircraft image uploaded", "aircraft_id", aircraft.ID, "key", key, "content_type", contentType)
	return contentType, nil
}

// Open streams the image of any aircraft; images are public.
func (s *ImageService) Open(ctx context.Context, aircraftID string) (*storage.Object, error) {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft.ImageKey == nil {
		return nil, constants.ErrImageNotFound
	}

	obj, err := s.store.Open(ctx, *aircraft.ImageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, constants.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return obj, nil
}

func (s *ImageService) Delete(ctx context.Context, p auth.Principal, aircraftID string) error {
	aircraft, err := s.aircraft.GetOwned(ctx, aircraftID, p.UserID)
	if err != nil {
		return err
	}
	if aircraft.ImageKey == nil {
		return constants.ErrImageNotFound
	}

	key := *aircraft.ImageKey
	if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	aircraft.ImageKey = nil
	return s.aircraft.Save(ctx, aircraft)
}

// Cleanup removes stored objects for records that are already gone.
// Failures are logged and otherwise ignored.
func (s *ImageService) Cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		s.discard(ctx, key)
	}
}

func (s *ImageService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		logging.Warn("Failed to delete image", "key", key, "error", err)
	}
}
