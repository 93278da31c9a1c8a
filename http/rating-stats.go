package http

import (
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) getRatingStats(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	stats, err := httpserver.ratingSrvc.GetStats(r.Context(), ident.Email)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, stats)
}
