package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) getContestStatus(w http.ResponseWriter, r *http.Request) {
	type contestStatusResponse struct {
		Room          contest.RoomView `json:"room"`
		IsParticipant bool             `json:"is_participant"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	contestID := chi.URLParam(r, "contestID")

	res, err := httpserver.coordinator.GetContestStatus(r.Context(), ident, contestID)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, contestStatusResponse{
		Room:          res.Room,
		IsParticipant: res.IsParticipant,
	})
}
