package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

// DecodeJSON reads the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errs.New(errs.KindValidation, "Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Wrap(errs.KindValidation, err, "Invalid request body")
	}
	return nil
}

// PathUUID parses the mux path variable name as a uuid.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Newf(errs.KindValidation, "Invalid %s", name)
	}
	return id, nil
}

// Caller returns the identity put in the context by the auth middleware.
func Caller(r *http.Request) (domain.Identity, error) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		return domain.Identity{}, errs.New(errs.KindUnauthorized, "Unauthorized - No token provided")
	}
	return identity, nil
}
