package judge

import (
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeEvaluatorUnavailable = "evaluator_unavailable"

func ErrEvaluatorUnavailable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEvaluatorUnavailable,
		"the code evaluator is currently unavailable",
	).SetHttpStatusCode(http.StatusBadGateway)
}
