package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prperemyshlev/videotube/internal/domain"
)

// Uploads stores multipart files in a temp directory until the request finishes
type Uploads struct {
	dir     string
	maxSize int64
}

func NewUploads(dir string, maxSize int64) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploads{dir: dir, maxSize: maxSize}, nil
}

// LimitBody caps the request body size for upload routes.
func (u *Uploads) LimitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, u.maxSize)
		c.Next()
	}
}

// Save writes the form file to disk and returns its path. A missing field yields "".
// The returned cleanup removes the file and must always be called.
func (u *Uploads) Save(c *gin.Context, field string) (string, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", noop, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", noop, domain.Validation("file is too large")
		}
		return "", noop, domain.Validation("invalid multipart form", err.Error())
	}

	path := filepath.Join(u.dir, uuid.NewString()+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return "", noop, domain.Internal("failed to save upload", err)
	}

	return path, func() { _ = os.Remove(path) }, nil
}
