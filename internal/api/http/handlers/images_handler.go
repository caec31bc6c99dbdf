package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/image-service/internal/api/dto"
	"github.com/spec-kit/image-service/internal/auth"
	"github.com/spec-kit/image-service/internal/service"
	apperrors "github.com/spec-kit/image-service/pkg/util"
)

// ImagesHandler exposes the image upload/delete/view endpoints. All of them
// sit behind the authentication pipeline.
type ImagesHandler struct {
	media          *service.MediaService
	maxUploadBytes int64
}

// NewImagesHandler constructs handler.
func NewImagesHandler(media *service.MediaService, maxUploadBytes int64) *ImagesHandler {
	return &ImagesHandler{media: media, maxUploadBytes: maxUploadBytes}
}

// Upload handles POST /images/upload. The file is forwarded to the media
// host and recorded against the authenticated user.
func (h *ImagesHandler) Upload(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file is required", nil)
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return apperrors.NewValidationError("file too large", map[string]any{
			"max_bytes": h.maxUploadBytes,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.MapError(err)
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	result, err := h.media.Upload(c.Context(), identity.Subject, data, contentType)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusOK).JSON(dto.UploadResponse{
		ImageURL: result.ImageURL,
		PublicID: result.PublicID,
	})
}

// Delete handles DELETE /images/delete?publicId=.
func (h *ImagesHandler) Delete(c *fiber.Ctx) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return auth.Unauthorized(c)
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		return apperrors.NewValidationError("publicId is required", nil)
	}

	result, err := h.media.Delete(c.Context(), publicID)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusOK).SendString(result)
}

// View handles GET /images/view?username=.
func (h *ImagesHandler) View(c *fiber.Ctx) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return auth.Unauthorized(c)
	}

	username := c.Query("username")
	if username == "" {
		return apperrors.NewValidationError("username is required", nil)
	}

	urls, err := h.media.View(c.Context(), username)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusOK).JSON(dto.ViewResponse{URLs: urls})
}
