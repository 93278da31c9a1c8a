package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) createContest(w http.ResponseWriter, r *http.Request) {
	type createContestRequest struct {
		Mode       string   `json:"mode"`
		ProblemIDs []string `json:"problem_ids,omitempty"`
	}

	type createContestResponse struct {
		ContestID string           `json:"contest_id"`
		Room      contest.RoomView `json:"room"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	var request createContestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	res, err := httpserver.coordinator.CreateContest(r.Context(), ident,
		contest.Mode(request.Mode), request.ProblemIDs)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, createContestResponse{
		ContestID: res.ContestID,
		Room:      res.Room,
	})
}
