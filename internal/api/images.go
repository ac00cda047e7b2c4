package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

// multipart framing on top of the image itself
const uploadOverhead = 64 << 10

// readImageField returns the bytes of the "image" form file.
func readImageField(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxImageBytes+uploadOverhead)

	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, constants.ErrImageTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return nil, constants.ErrNoImageSelected
		}
		return nil, constants.Validationf("Invalid upload: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// UploadImageHandler handles POST /api/v1/aircraft/{id}/image
func UploadImageHandler(imageSvc *services.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		data, err := readImageField(w, r)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		contentType, err := imageSvc.Upload(r.Context(), p, chi.URLParam(r, "id"), data)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Image uploaded successfully",
			dtos.ImageUploadResponse{ContentType: contentType, Size: len(data)}, http.StatusCreated)
	}
}

// GetImageHandler handles GET /api/v1/images/{aircraftId}
func GetImageHandler(imageSvc *services.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		obj, err := imageSvc.Open(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		defer obj.Body.Close()

		w.Header().Set("Content-Type", obj.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, obj.Body); err != nil {
			logging.Warn("Image stream interrupted", "error", err)
		}
	}
}

// DeleteImageHandler handles DELETE /api/v1/aircraft/{id}/image
func DeleteImageHandler(imageSvc *services.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := imageSvc.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Image deleted successfully", nil)
	}
}
