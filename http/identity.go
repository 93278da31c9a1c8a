package http

import (
	"net/http"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/srvcerror"
)

// identity resolves the calling user from the JWT middleware's claims.
func identity(r *http.Request) (contest.Identity, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || claims.Email == "" {
		return contest.Identity{}, srvcerror.ErrUnauthorized()
	}
	name := claims.Username
	if name == "" {
		name = claims.Email
	}
	return contest.Identity{Email: claims.Email, Name: name}, nil
}
