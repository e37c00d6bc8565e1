package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billboardbids/pkg/config"
	"billboardbids/pkg/logger"
)

func testConfig(t *testing.T, maxSize int) *config.Config {
	t.Helper()
	return &config.Config{
		UploadDir:     t.TempDir(),
		MaxUploadSize: maxSize,
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/creative", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadCreative(t *testing.T) {
	t.Run("stores image and returns URL", func(t *testing.T) {
		cfg := testConfig(t, 10*1024*1024)
		h := NewUploadHandler(cfg)

		req := multipartRequest(t, FormField, "billboard-art.png", []byte("fake png bytes"))
		rec := httptest.NewRecorder()
		h.UploadCreative(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp UploadResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response failed: %v", err)
		}
		if !resp.Success {
			t.Error("Success = false")
		}
		if !strings.HasPrefix(resp.FileURL, "/uploads/creative-") {
			t.Errorf("FileURL = %q, want /uploads/creative- prefix", resp.FileURL)
		}
		if !strings.HasSuffix(resp.Filename, ".png") {
			t.Errorf("Filename = %q, want original extension kept", resp.Filename)
		}
		if resp.Size != int64(len("fake png bytes")) {
			t.Errorf("Size = %d, want %d", resp.Size, len("fake png bytes"))
		}

		stored, err := os.ReadFile(filepath.Join(cfg.UploadDir, resp.Filename))
		if err != nil {
			t.Fatalf("stored file unreadable: %v", err)
		}
		if string(stored) != "fake png bytes" {
			t.Error("stored content does not match upload")
		}
	})

	t.Run("rejects non-image extensions", func(t *testing.T) {
		h := NewUploadHandler(testConfig(t, 10*1024*1024))

		req := multipartRequest(t, FormField, "malware.exe", []byte("nope"))
		rec := httptest.NewRecorder()
		h.UploadCreative(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects missing file field", func(t *testing.T) {
		h := NewUploadHandler(testConfig(t, 10*1024*1024))

		req := multipartRequest(t, "wrong_field", "art.png", []byte("data"))
		rec := httptest.NewRecorder()
		h.UploadCreative(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		h := NewUploadHandler(testConfig(t, 64))

		req := multipartRequest(t, FormField, "huge.png", bytes.Repeat([]byte("x"), 4096))
		rec := httptest.NewRecorder()
		h.UploadCreative(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
