package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/contest"
	clashhttp "github.com/codeclash/backend/http"
	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/rating"
)

var testJwtKey = []byte("test")

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	ratingSrvc := rating.NewRatingSrvc(rating.NewInMemRatingRepo())
	coordinator := contest.NewCoordinator(contest.NewInMemRegistry(), ratingSrvc, judge.NewStubJudge())
	server := clashhttp.NewHttpServer(coordinator, ratingSrvc, testJwtKey,
		[]string{"http://localhost:3000"})
	return server.Handler()
}

func doJson(t *testing.T, handler http.Handler, method, path, token string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("{}")
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, username, email string) string {
	t.Helper()
	token, err := auth.GenerateJWT(username, email, testJwtKey)
	require.NoError(t, err)
	return token
}

func parseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var wrapper struct {
		Status string                 `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper), "body: %s", w.Body.String())
	require.Equal(t, "success", wrapper.Status, "body: %s", w.Body.String())
	return wrapper.Data
}

func TestContestFlowHttp(t *testing.T) {
	handler := setupServer(t)
	alice := tokenFor(t, "alice", "alice@example.com")
	bob := tokenFor(t, "bob", "bob@example.com")

	// alice opens a duel
	w := doJson(t, handler, http.MethodPost, "/contests", alice,
		map[string]interface{}{"mode": "duel"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := parseData(t, w)
	contestID, ok := data["contest_id"].(string)
	require.True(t, ok)

	// the duel shows up for bob as joinable
	w = doJson(t, handler, http.MethodGet, "/contests/joinable", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = parseData(t, w)
	require.Len(t, data["contests"], 1)

	// bob joins and fills the room
	w = doJson(t, handler, http.MethodPost, "/contests/"+contestID+"/join", bob, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = parseData(t, w)
	assert.Equal(t, true, data["auto_started"])

	// both submit; the stub judge accepts everything
	w = doJson(t, handler, http.MethodPost, "/contests/"+contestID+"/submissions", alice,
		map[string]interface{}{"problem_id": "two-sum-pairs", "code": "x", "language": "go"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = parseData(t, w)
	assert.Equal(t, false, data["contest_ended"])

	w = doJson(t, handler, http.MethodPost, "/contests/"+contestID+"/submissions", bob,
		map[string]interface{}{"problem_id": "two-sum-pairs", "code": "y", "language": "go"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = parseData(t, w)
	assert.Equal(t, true, data["contest_ended"])

	// the room reports ended with results
	w = doJson(t, handler, http.MethodGet, "/contests/"+contestID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = parseData(t, w)
	room := data["room"].(map[string]interface{})
	assert.Equal(t, "ended", room["status"])
	assert.NotNil(t, room["results"])
	assert.Equal(t, true, data["is_participant"])

	// rating history now holds one contest for alice
	w = doJson(t, handler, http.MethodGet, "/ratings/history", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = parseData(t, w)
	require.Len(t, data["rating_history"], 1)
}

func TestContestJoinErrorsHttp(t *testing.T) {
	handler := setupServer(t)
	alice := tokenFor(t, "alice", "alice@example.com")

	w := doJson(t, handler, http.MethodPost, "/contests/no-such-contest/join", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var wrapper struct {
		Status  string `json:"status"`
		ErrCode string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
	assert.Equal(t, "error", wrapper.Status)
	assert.Equal(t, contest.ErrCodeContestNotFound, wrapper.ErrCode)
}

func TestContestRequiresAuthHttp(t *testing.T) {
	handler := setupServer(t)

	w := doJson(t, handler, http.MethodPost, "/contests", "",
		map[string]interface{}{"mode": "duel"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateContestInvalidModeHttp(t *testing.T) {
	handler := setupServer(t)
	alice := tokenFor(t, "alice", "alice@example.com")

	w := doJson(t, handler, http.MethodPost, "/contests", alice,
		map[string]interface{}{"mode": "marathon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
