package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gridplace-dev/gridplace/internal/domain"
)

func parseBoardId(r *http.Request) (domain.BoardId, error) {
	raw := chi.URLParam(r, "board")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid board id: must be an integer")
	}
	return domain.BoardId(id), nil
}

// parseTimeQuery parses an optional RFC3339 query parameter; absent returns
// nil.
func parseTimeQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: must be RFC3339", name)
	}
	return &t, nil
}
