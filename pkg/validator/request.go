package validator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
)

// ValidateRequest decodes the JSON body into a T and validates it. On failure
// the error response has already been written and ok is false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (req *T, ok bool) {
	req = new(T)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeDecodeError(w, err)
		return nil, false
	}
	if err := Validate(req); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}

// WriteError writes a 422 listing each failed field of err.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSON(w, http.StatusUnprocessableEntity, httpx.ValidationErrorResponse{
		Error:  "Validation failed",
		Fields: FormatValidationErrors(err),
	})
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, io.EOF):
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON: empty body")
	default:
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
	}
}
