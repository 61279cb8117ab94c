package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/kailas-cloud/discovery/internal/domain"
)

// APIKeyHeader carries the key that unlocks the private index.
const APIKeyHeader = "X-API-Key"

// exemptPaths are routes that ignore credentials (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type indexKey struct{}

// WithIndex stores the index a request is served from.
func WithIndex(ctx context.Context, idx domain.Index) context.Context {
	return context.WithValue(ctx, indexKey{}, idx)
}

// IndexFromContext returns the request's index, defaulting to the public one.
func IndexFromContext(ctx context.Context) domain.Index {
	if idx, ok := ctx.Value(indexKey{}).(domain.Index); ok {
		return idx
	}
	return domain.IndexPublic
}

// IndexSelectionMiddleware serves requests carrying a valid API key (X-API-Key
// or a Bearer token) from the private index. Requests without a key use the
// public index; an unknown key is rejected with 401. With no keys configured
// every request is public.
func IndexSelectionMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			key, present := apiKey(r)
			if !present {
				next.ServeHTTP(w, r.WithContext(WithIndex(r.Context(), domain.IndexPublic)))
				return
			}
			if _, ok := validKeys[key]; !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIndex(r.Context(), domain.IndexPrivate)))
		})
	}
}

func apiKey(r *http.Request) (string, bool) {
	if k := r.Header.Get(APIKeyHeader); k != "" {
		return k, true
	}
	const bearerPrefix = "Bearer "
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		return auth[len(bearerPrefix):], true
	}
	return "", false
}
