package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// maxUploadBytes caps attachment size at 10 MiB.
const maxUploadBytes = 10 << 20

// FilesHandler serves attachment upload and download.
type FilesHandler struct {
	blobs repository.BlobStore
}

// NewFilesHandler constructs handler.
func NewFilesHandler(blobs repository.BlobStore) *FilesHandler {
	return &FilesHandler{blobs: blobs}
}

// Upload POST /files.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	if _, ok := auth.SessionFromContext(c); !ok {
		return apperrors.NewUnauthorized("session required")
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}
	if fileHeader.Size > maxUploadBytes {
		return apperrors.NewValidationError("file exceeds maximum size", nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if len(data) > maxUploadBytes {
		return apperrors.NewValidationError("file exceeds maximum size", nil)
	}

	url, err := h.blobs.Store(c.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"url": url}})
}

// Download GET /files/:id.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	blob, err := h.blobs.Fetch(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("file", nil)
		}
		return apperrors.MapError(err)
	}
	c.Set(fiber.HeaderContentType, blob.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+blob.FileName+`"`)
	return c.Send(blob.Data)
}
