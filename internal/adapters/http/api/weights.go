package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hooprank/hooprank/internal/domain/scoring"
)

// WeightsDependencies defines the interface for weight vector management.
type WeightsDependencies interface {
	Weights(ctx context.Context) map[string]float64
	UpdateWeights(ctx context.Context, weights map[string]float64) error
}

// WeightsHandler handles weight vector reads and replacements.
type WeightsHandler struct {
	deps WeightsDependencies
}

// NewWeightsHandler creates a new weights handler.
func NewWeightsHandler(deps WeightsDependencies) *WeightsHandler {
	return &WeightsHandler{deps: deps}
}

// weightsResponse wraps the active weight vector keyed by category.
type weightsResponse struct {
	Weights map[string]float64 `json:"weights"`
}

// HandleWeights handles GET and PUT /weights requests.
//
// PUT replaces the whole vector: every tracked category must be
// present. A partial vector is rejected so a dropped category cannot
// masquerade as a deliberate zero weight.
func (h *WeightsHandler) HandleWeights(w http.ResponseWriter, r *http.Request) {
	const op = "api.weights"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, weightsResponse{Weights: h.deps.Weights(r.Context())})
	case http.MethodPut:
		var req weightsResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.UpdateWeights(r.Context(), req.Weights); err != nil {
			if isWeightConfigError(err) {
				writeError(w, http.StatusBadRequest, "invalid_weights", Wrap(op, err))
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, weightsResponse{Weights: h.deps.Weights(r.Context())})
	default:
		http.NotFound(w, r)
	}
}

func isWeightConfigError(err error) bool {
	return errors.Is(err, scoring.ErrMissingWeight) ||
		errors.Is(err, scoring.ErrUnknownCategory) ||
		errors.Is(err, scoring.ErrInvalidWeight)
}
