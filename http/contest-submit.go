package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/logger"
)

func (httpserver *HttpServer) submitSolution(w http.ResponseWriter, r *http.Request) {
	type submitRequest struct {
		ProblemID string `json:"problem_id"`
		Code      string `json:"code"`
		Language  string `json:"language"`
	}

	type submitResponse struct {
		Submission   contest.Submission      `json:"submission"`
		Participant  contest.ParticipantView `json:"participant"`
		Room         contest.RoomView        `json:"room"`
		ContestEnded bool                    `json:"contest_ended"`
		JudgeError   string                  `json:"judge_error,omitempty"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	contestID := chi.URLParam(r, "contestID")
	ctx := logger.WithContestID(r.Context(), contestID)
	log := logger.FromContext(ctx)

	res, err := httpserver.coordinator.SubmitSolution(ctx, ident, contestID, contest.SubmitParams{
		ProblemID: request.ProblemID,
		Code:      request.Code,
		Language:  request.Language,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, submitResponse{
		Submission:   res.Submission,
		Participant:  res.Participant,
		Room:         res.Room,
		ContestEnded: res.ContestEnded,
		JudgeError:   res.JudgeError,
	})
}
