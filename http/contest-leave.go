package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) leaveContest(w http.ResponseWriter, r *http.Request) {
	type leaveContestResponse struct {
		Room           *contest.RoomView `json:"room,omitempty"`
		ContestDeleted bool              `json:"contest_deleted,omitempty"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	contestID := chi.URLParam(r, "contestID")

	res, err := httpserver.coordinator.LeaveContest(r.Context(), ident, contestID)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, leaveContestResponse{
		Room:           res.Room,
		ContestDeleted: res.ContestDeleted,
	})
}
