package composables

import (
	"net/http"
	"strconv"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func UsePaginated(r *http.Request) PaginationParams {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return PaginationParams{Limit: limit, Offset: offset}
}
