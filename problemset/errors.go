package problemset

import (
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeProblemNotFound = "problem_not_found"

func ErrProblemNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		"problem not found",
	).SetHttpStatusCode(http.StatusNotFound)
}
