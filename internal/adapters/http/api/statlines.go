package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hooprank/hooprank/internal/domain/model"
)

// statLineRequest mirrors the JSON schema for POST /statlines.
// Stat fields are pointers so an omitted value stays distinguishable
// from a real zero; omitted values are excluded from population
// statistics rather than biasing them toward zero.
type statLineRequest struct {
	SubmissionID string `json:"submission_id"`
	AthleteID    string `json:"athlete_id"`
	Name         string `json:"name"`

	Points            *float64 `json:"points"`
	Rebounds          *float64 `json:"rebounds"`
	Assists           *float64 `json:"assists"`
	Steals            *float64 `json:"steals"`
	Blocks            *float64 `json:"blocks"`
	ThreePointersMade *float64 `json:"three_pointers_made"`
	Turnovers         *float64 `json:"turnovers"`

	FieldGoalPct      *float64 `json:"field_goal_pct"`
	FieldGoalAttempts *float64 `json:"field_goal_attempts"`
	FreeThrowPct      *float64 `json:"free_throw_pct"`
	FreeThrowAttempts *float64 `json:"free_throw_attempts"`
}

func (r statLineRequest) validate() error {
	switch {
	case strings.TrimSpace(r.SubmissionID) == "":
		return errors.New("missing submission_id")
	case strings.TrimSpace(r.AthleteID) == "":
		return errors.New("missing athlete_id")
	case strings.TrimSpace(r.Name) == "":
		return errors.New("missing name")
	}
	if r.FieldGoalPct != nil && (*r.FieldGoalPct < 0 || *r.FieldGoalPct > 1) {
		return errors.New("field_goal_pct must be within [0, 1]")
	}
	if r.FreeThrowPct != nil && (*r.FreeThrowPct < 0 || *r.FreeThrowPct > 1) {
		return errors.New("free_throw_pct must be within [0, 1]")
	}
	return nil
}

func orAbsent(v *float64) float64 {
	if v == nil {
		return model.Absent()
	}
	return *v
}

func (r statLineRequest) toSubmission() model.Submission {
	return model.Submission{
		SubmissionID: r.SubmissionID,
		Record: model.StatRecord{
			AthleteID:         r.AthleteID,
			Name:              r.Name,
			Points:            orAbsent(r.Points),
			Rebounds:          orAbsent(r.Rebounds),
			Assists:           orAbsent(r.Assists),
			Steals:            orAbsent(r.Steals),
			Blocks:            orAbsent(r.Blocks),
			ThreePointersMade: orAbsent(r.ThreePointersMade),
			Turnovers:         orAbsent(r.Turnovers),
			FieldGoalPct:      orAbsent(r.FieldGoalPct),
			FieldGoalAttempts: orAbsent(r.FieldGoalAttempts),
			FreeThrowPct:      orAbsent(r.FreeThrowPct),
			FreeThrowAttempts: orAbsent(r.FreeThrowAttempts),
		},
		TS: time.Now().UTC(),
	}
}

// StatLineDependencies defines the interface for submission processing.
type StatLineDependencies interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	Enqueue(ctx context.Context, sub model.Submission) bool
}

// StatLinesHandler handles stat-line submissions.
type StatLinesHandler struct {
	deps StatLineDependencies
}

// NewStatLinesHandler creates a new stat-line handler.
func NewStatLinesHandler(deps StatLineDependencies) *StatLinesHandler {
	return &StatLinesHandler{deps: deps}
}

// HandlePostStatLine handles POST /statlines requests.
func (h *StatLinesHandler) HandlePostStatLine(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_statline"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req statLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check; mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.SubmissionID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.Enqueue(r.Context(), req.toSubmission()); !ok {
		// Roll back the seen mark so the client can retry.
		h.deps.Unrecord(r.Context(), req.SubmissionID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
