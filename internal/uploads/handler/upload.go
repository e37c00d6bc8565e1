// Package handler stores uploaded creative images on local disk and
// hands back the URL the static file server exposes them under.
package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	httputil "billboardbids/pkg/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// FormField is the multipart field name the frontend uploads under.
const FormField = "creative"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"fileUrl"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Message  string `json:"message"`
}

type UploadHandler struct {
	cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

func (h *UploadHandler) UploadCreative(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filename, size, err := h.saveCreative(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.cfg.Log.Error("failed to write error response", "handler", "UploadCreative", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := UploadResponse{
		Success:  true,
		FileURL:  "/uploads/" + filename,
		Filename: filename,
		Size:     size,
		Message:  "Creative uploaded successfully",
	}

	h.cfg.Log.Info("Creative uploaded", "filename", filename, "size", size)

	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.cfg.Log.Error("failed to write JSON response", "handler", "UploadCreative", "operation", "WriteJSON", "error", err)
	}
}

func (h *UploadHandler) saveCreative(r *http.Request) (string, int64, error) {
	maxSize := int64(h.cfg.MaxUploadSize)
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return "", 0, apperrors.UploadRejected("File too large or malformed upload (max 10MB)")
	}

	file, header, err := r.FormFile(FormField)
	if err != nil {
		return "", 0, apperrors.UploadRejected("No file uploaded")
	}
	defer file.Close()

	if header.Size > maxSize {
		return "", 0, apperrors.UploadRejected(fmt.Sprintf("File exceeds %d byte limit", maxSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", 0, apperrors.UploadRejected("Only image files are allowed (jpeg, jpg, png, gif, webp)")
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", 0, apperrors.Internal("Failed to prepare upload directory", err)
	}

	filename := "creative-" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.cfg.UploadDir, filename))
	if err != nil {
		return "", 0, apperrors.Internal("Failed to store uploaded file", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		return "", 0, apperrors.Internal("Failed to store uploaded file", err)
	}

	return filename, size, nil
}

func (h *UploadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/uploads/creative", h.UploadCreative)
}
