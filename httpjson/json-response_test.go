package httpjson_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeclash/backend/httpjson"
	"github.com/codeclash/backend/srvcerror"
)

func TestHandleErrorKeepsServiceErrorCodeAndStatus(t *testing.T) {
	w := httptest.NewRecorder()
	err := srvcerror.New("thing_missing", "thing not found").
		SetHttpStatusCode(http.StatusNotFound)

	httpjson.HandleError(slog.Default(), w, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp struct {
		Status string `json:"status"`
		Code   string `json:"code"`
		Msg    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "thing_missing", resp.Code)
	assert.Equal(t, "thing not found", resp.Msg)
}

func TestHandleErrorMasksUnknownErrors(t *testing.T) {
	w := httptest.NewRecorder()

	httpjson.HandleError(slog.Default(), w, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp struct {
		Code string `json:"code"`
		Msg  string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, srvcerror.ErrCodeInternalServerError, resp.Code)
	assert.NotContains(t, resp.Msg, "dial tcp", "internals must not leak to the client")
}
