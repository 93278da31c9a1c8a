package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/logger"
)

func (httpserver *HttpServer) joinContest(w http.ResponseWriter, r *http.Request) {
	type joinContestResponse struct {
		Room        contest.RoomView `json:"room"`
		AutoStarted bool             `json:"auto_started"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	contestID := chi.URLParam(r, "contestID")
	ctx := logger.WithContestID(r.Context(), contestID)

	res, err := httpserver.coordinator.JoinContest(ctx, ident, contestID)
	if err != nil {
		httpjson.HandleError(logger.FromContext(ctx), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, joinContestResponse{
		Room:        res.Room,
		AutoStarted: res.AutoStarted,
	})
}
