package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"unicode/utf8"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

const maxFileNameLength = 256

// parseMultipart caps the body at maxBytes and parses the form. It writes
// 413 or 400 and returns false on failure.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", maxBytes))
			return false
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	return true
}

// checkFileName enforces the upload file name limits.
func checkFileName(fh *multipart.FileHeader) error {
	switch {
	case fh.Filename == "":
		return errors.New("file name is required")
	case utf8.RuneCountInString(fh.Filename) > maxFileNameLength:
		return fmt.Errorf("file name exceeds %d characters", maxFileNameLength)
	}
	return nil
}

// openUpload opens fh for streaming to storage. The caller closes the file.
func openUpload(fh *multipart.FileHeader) (appsvcs.Upload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return appsvcs.Upload{}, nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	return appsvcs.Upload{
		Content:     f,
		Size:        fh.Size,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}
