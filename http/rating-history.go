package http

import (
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/httpjson"
)

func (httpserver *HttpServer) getRatingHistory(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	history, err := httpserver.ratingSrvc.GetHistory(r.Context(), ident.Email)
	if err != nil {
		httpjson.HandleError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, history)
}
