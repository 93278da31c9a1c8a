package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

type JsonResponse struct {
	Status  string `json:"status"` // "success" or "error"
	Data    any    `json:"data,omitempty"`
	ErrCode string `json:"code,omitempty"`
	ErrMsg  string `json:"message,omitempty"`
}

func WriteSuccessJson(w http.ResponseWriter, data any) {
	resp := JsonResponse{
		Status: "success",
		Data:   data,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func WriteErrorJson(w http.ResponseWriter, errMsg string, statusCode int, errCode string) {
	resp := JsonResponse{
		Status:  "error",
		ErrMsg:  errMsg,
		ErrCode: errCode,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// HandleError writes err as the error envelope. Service errors keep
// their code and status; anything else is masked as a plain internal
// server error so no internals leak to the client.
func HandleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	srvcErr := &srvcerror.Error{}
	if !errors.As(err, &srvcErr) {
		logger.Error("unhandled error", "error", err)
		WriteErrorJson(w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
			srvcerror.ErrCodeInternalServerError)
		return
	}

	attrs := []any{"code", srvcErr.ErrorCode(), "error", err}
	if srvcErr.DebugInfo() != nil {
		attrs = append(attrs, "debug", srvcErr.DebugInfo())
	}
	if srvcErr.HttpStatusCode() >= http.StatusInternalServerError {
		logger.Error("service error", attrs...)
	} else {
		logger.Warn("service error", attrs...)
	}

	WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode(), srvcErr.ErrorCode())
}
