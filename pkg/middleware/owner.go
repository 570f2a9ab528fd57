package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/configuration"
)

// ProvideOwnerID resolves the owner (tenant) from the request header set by
// the upstream auth proxy. Requests without a valid owner never reach a
// repository.
func ProvideOwnerID() mux.MiddlewareFunc {
	header := configuration.Use().OwnerIDHeader
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(header))
			ownerID, err := uuid.Parse(raw)
			if err != nil || ownerID == uuid.Nil {
				http.Error(w, "missing or invalid owner id", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithOwnerID(r.Context(), ownerID)))
		})
	}
}
