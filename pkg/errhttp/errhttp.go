// Package errhttp maps classified domain errors to HTTP responses.
// Every bounded context declares sentinels with apperr.New, so the mapping is
// by kind and needs no per-context cases.
package errhttp

import (
	"net/http"
	"sync/atomic"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/apperr"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/httpx"
)

var exposeInternal atomic.Bool

// ExposeInternalErrors controls whether 5xx responses carry the raw error
// message. Enable in development only.
func ExposeInternalErrors(v bool) {
	exposeInternal.Store(v)
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Unclassified errors become 500 with a generic message unless internal errors
// are exposed.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, !exposeInternal.Load()))
}

// StatusFor returns the HTTP status for err's kind.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		return http.StatusNotFound // 404
	case apperr.NotOwner:
		return http.StatusForbidden // 403
	case apperr.InvalidInput:
		return http.StatusUnprocessableEntity // 422
	case apperr.Conflict:
		return http.StatusConflict // 409
	case apperr.Unauthenticated:
		return http.StatusUnauthorized // 401
	case apperr.Upstream:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
