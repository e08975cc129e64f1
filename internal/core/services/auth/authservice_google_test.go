package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
	"golang.org/x/oauth2"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

func newGoogleService(t *testing.T, f *authFixture, srvURL string) *googleAuthService {
	svc := NewGoogleAuthService(f.users, newJWT(), f.sessions, time.Hour, &config.GGAuthConfig{
		ClientID: "client", ClientSecret: "secret", RedirectURL: "http://localhost/callback",
	}).(*googleAuthService)
	if srvURL != "" {
		svc.oauth.Endpoint = oauth2.Endpoint{
			AuthURL:   srvURL + "/auth",
			TokenURL:  srvURL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
		svc.userInfoURL = srvURL + "/userinfo"
	}
	return svc
}

func TestGoogleUserFromCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "the-code", r.Form.Get("code"))
			_, _ = w.Write([]byte(`{"access_token":"google-token","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			assert.Equal(t, "Bearer google-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"sub":"g-123","name":"Carol","email":"carol@example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := newFixture(t)
	svc := newGoogleService(t, f, srv.URL)

	user, err := svc.UserFromCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "g-123", *user.GoogleID)
	assert.Equal(t, "carol@example.com", *user.Email)
	assert.True(t, user.IsEmailVerified)

	resp, err := svc.Login(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "Carol", resp.User.UserName)
	assert.Nil(t, resp.User.PasswordHash)

	// second login finds the same account
	again, err := svc.Login(context.Background(), &domain.Users{
		GoogleID: pointer.String("g-123"), Email: pointer.String("carol@example.com"), AuthProvider: "google",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
	assert.Len(t, f.users.byID, 1)
}

func TestGoogleLoginRejectsLocalEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	svc := newGoogleService(t, f, "")

	_, err := svc.Login(context.Background(), &domain.Users{
		GoogleID: pointer.String("g-9"), Email: pointer.String("alice@example.com"), AuthProvider: "google",
	})
	require.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestGoogleLoginRequiresGoogleIdentity(t *testing.T) {
	svc := newGoogleService(t, newFixture(t), "")

	_, err := svc.Login(context.Background(), &domain.Users{Email: pointer.String("x@y.z"), AuthProvider: "google"})
	require.ErrorIs(t, err, errs.InvalidCredentials)

	_, err = svc.UserFromCode(context.Background(), "")
	require.True(t, errs.IsKind(err, errs.KindValidation))

	assert.Contains(t, svc.AuthCodeURL("state-1"), "state=state-1")
}
