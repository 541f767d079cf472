package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/studentlms/backend/middleware"
)

var errMissingActor = errors.New("acting user could not be determined")

// resolveActor determines which user a write should be attributed to.
// An authenticated user always wins; otherwise the explicit ID from
// the request body is accepted.
//
// TODO: once clients send tokens on every write, drop the body
// fallback and put RequireAuth on the mutation routes.
func resolveActor(r *http.Request, bodyID string) (uuid.UUID, error) {
	if user := middleware.GetUserFromContext(r.Context()); user != nil {
		return user.ID, nil
	}
	if bodyID == "" {
		return uuid.Nil, errMissingActor
	}
	id, err := uuid.Parse(bodyID)
	if err != nil {
		return uuid.Nil, errMissingActor
	}
	return id, nil
}
