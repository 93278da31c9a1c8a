package rating

import (
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeRatingConflict = "rating_write_conflict"

func ErrRatingConflict() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRatingConflict,
		"rating record was modified concurrently",
	).SetHttpStatusCode(http.StatusConflict)
}
