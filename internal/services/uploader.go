package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/config"
)

// Uploader persists multipart image uploads to local disk and returns the
// public URL they are served from.
type Uploader struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewUploader creates the upload directory if needed.
func NewUploader(cfg *config.Config) *Uploader {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Printf("[Upload] failed to create upload dir %s: %v", cfg.UploadDir, err)
	}

	return &Uploader{
		dir:      cfg.UploadDir,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		maxBytes: cfg.MaxUploadMB << 20,
	}
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	Name string
	URL  string
}

// SaveImage stores an uploaded file, enforcing the image-only MIME filter and
// the configured size ceiling.
func (u *Uploader) SaveImage(fh *multipart.FileHeader) (StoredFile, error) {
	if fh == nil {
		return StoredFile{}, apperr.Validationf("no file uploaded")
	}

	if fh.Size > u.maxBytes {
		return StoredFile{}, apperr.Validationf("file %s exceeds the %dMB upload limit", fh.Filename, u.maxBytes>>20)
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return StoredFile{}, apperr.Validationf("only image uploads are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, apperr.Internal(err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return StoredFile{}, apperr.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return StoredFile{}, apperr.Internal(err)
	}

	return StoredFile{Name: name, URL: u.FileURL(name)}, nil
}

// FileURL returns the public URL for a stored filename.
func (u *Uploader) FileURL(name string) string {
	return u.baseURL + "/uploads/" + name
}
