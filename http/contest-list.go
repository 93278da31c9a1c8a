package http

import (
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) listActiveContests(w http.ResponseWriter, r *http.Request) {
	type listResponse struct {
		Contests []contest.RoomView `json:"contests"`
	}

	rooms := httpserver.coordinator.ListActiveContests(r.Context())

	httpjson.WriteSuccessJson(w, listResponse{Contests: rooms})
}

func (httpserver *HttpServer) listJoinableContests(w http.ResponseWriter, r *http.Request) {
	type listResponse struct {
		Contests []contest.RoomView `json:"contests"`
	}

	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	rooms := httpserver.coordinator.ListJoinableContests(r.Context(), ident)

	httpjson.WriteSuccessJson(w, listResponse{Contests: rooms})
}
