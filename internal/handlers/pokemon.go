package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pokedex-service/internal/dex"
	"pokedex-service/internal/pokeapi"
	"pokedex-service/pkg/logging"
)

// CatalogService is the aggregation service surface the handlers depend on.
type CatalogService interface {
	ListIndex(ctx context.Context, q dex.Query) (*dex.PageResult, error)
	ListByNumbers(ctx context.Context, numbers []int, limit, offset int) (*dex.PageResult, error)
	GetDetail(ctx context.Context, id int) (*dex.DetailItem, error)
}

// PokemonHandler serves the /api/v1/pokemon endpoints.
type PokemonHandler struct {
	Service CatalogService
}

func NewPokemonHandler(service CatalogService) *PokemonHandler {
	return &PokemonHandler{Service: service}
}

// List handles GET /api/v1/pokemon.
// Query: limit, offset, search (comma-separated), sort (name|number),
// order (asc|desc).
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := dex.ParseQuery(r.URL.Query())

	result, err := h.Service.ListIndex(ctx, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListByNumbers handles GET /api/v1/pokemon/numbers.
// Query: numbers (comma-separated ids), limit, offset. Result order mirrors
// the requested number order.
func (h *PokemonHandler) ListByNumbers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := dex.ParseQuery(r.URL.Query())
	numbers := parseNumbers(r.URL.Query().Get("numbers"))

	result, err := h.Service.ListByNumbers(ctx, numbers, q.Limit, q.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Detail handles GET /api/v1/pokemon/{id}.
func (h *PokemonHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// strconv.Atoi also normalizes zero-padded ids: "004" and "4" resolve
	// to the same entity and share one cache entry.
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, dex.ErrInvalidID)
		return
	}

	detail, err := h.Service.GetDetail(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// parseNumbers splits a comma-separated id list, dropping segments that are
// not positive integers.
func parseNumbers(raw string) []int {
	if raw == "" {
		return nil
	}

	var numbers []int
	for _, seg := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err == nil && n > 0 {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError maps domain errors to HTTP statuses: caller faults to 4xx,
// upstream faults to 502 with the upstream detail passed through for
// diagnostics.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.L(r.Context())

	switch {
	case errors.Is(err, dex.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_id"})
	case errors.Is(err, pokeapi.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	case errors.Is(err, pokeapi.ErrUpstream):
		logger.Warn("upstream failure", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  "upstream_unavailable",
			Detail: err.Error(),
		})
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

// writeJSON sends JSON responses consistently.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
