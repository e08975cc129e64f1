// Package handlertest holds helpers for exercising handlers behind the auth middleware.
package handlertest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/static/errs"
)

// Sessions authenticates a fixed set of bearer tokens.
type Sessions map[string]domain.Identity

func (s Sessions) Register(context.Context, domain.RegisterRequest) (*domain.LoginResponse, error) {
	return nil, errs.New(errs.KindUnknown, "not supported")
}

func (s Sessions) Refresh(context.Context, string) (*domain.LoginResponse, error) {
	return nil, errs.New(errs.KindUnknown, "not supported")
}

func (s Sessions) Logout(context.Context, uuid.UUID) error { return nil }

func (s Sessions) Profile(context.Context, uuid.UUID) (*domain.Users, error) {
	return nil, errs.New(errs.KindUnknown, "not supported")
}

func (s Sessions) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	identity, ok := s[token]
	if !ok {
		return domain.Identity{}, errs.New(errs.KindUnauthorized, "Unauthorized - Invalid token")
	}
	return identity, nil
}

// Request builds a request authenticated with token; an empty token sends none.
func Request(method, target, token, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Serve runs req through h and decodes the response envelope.
func Serve(h http.Handler, req *http.Request) (*httptest.ResponseRecorder, response.Envelope) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env response.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

// DataInto re-decodes env.Data into dst.
func DataInto(env response.Envelope, dst interface{}) error {
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
