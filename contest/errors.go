package contest

import (
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

const ErrCodeInvalidMode = "invalid_contest_mode"

func ErrInvalidMode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidMode,
		"invalid contest mode",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeContestNotFound = "contest_not_found"

func ErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"contest not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeContestAlreadyStarted = "contest_already_started"

func ErrContestAlreadyStarted() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestAlreadyStarted,
		"contest has already started",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeContestFull = "contest_full"

func ErrContestFull() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestFull,
		"contest is full",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeAlreadyJoined = "already_joined"

func ErrAlreadyJoined() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyJoined,
		"you have already joined this contest",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeContestNotActive = "contest_not_active"

func ErrContestNotActive() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotActive,
		"contest is not active",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotAParticipant = "not_a_participant"

func ErrNotAParticipant() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAParticipant,
		"you are not a participant of this contest",
	).SetHttpStatusCode(http.StatusConflict)
}
