package httpx

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"
)

// CORSMiddleware allows the comma-separated origins in allowed. "*" allows
// any origin but then never sends credentials, so the session cookie only
// travels to explicitly listed front ends.
func CORSMiddleware(allowed string) func(http.Handler) http.Handler {
	origins := splitOrigins(allowed)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "X-Request-Id"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}

func splitOrigins(s string) []string {
	var out []string
	for o := range strings.SplitSeq(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if out == nil {
		return []string{"*"}
	}
	return out
}
