package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/static/errs"
)

const (
	refreshTokenCookie = "refreshToken"
	oauthStateCookie   = "oauthState"
)

type ServiceDependencies struct {
	Sessions         auth.ISessionService
	Accounts         auth.IAccountService
	LocalAuthService auth.IAuthService
	// GGAuthService is nil when Google login is not configured
	GGAuthService auth.IGoogleAuthService
}

type Handler struct {
	deps          *ServiceDependencies
	secure        bool
	accessMaxAge  time.Duration
	refreshMaxAge time.Duration
	logger        primary.Logger
}

func NewHandler(deps *ServiceDependencies, cfg *config.JwtConfig, logger primary.Logger) *Handler {
	return &Handler{
		deps:          deps,
		secure:        cfg.SecureCookies,
		accessMaxAge:  cfg.AccessExpiry,
		refreshMaxAge: cfg.RefreshExpiry,
		logger:        logger,
	}
}

// RegisterRoutes mounts the auth routes on router, expected to be the /api/v1/auth subrouter.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/verify/resend", h.ResendVerification).Methods(http.MethodPost)
	router.HandleFunc("/verify/{token}", h.VerifyEmail).Methods(http.MethodGet)
	router.HandleFunc("/forgot-password", h.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password/{token}", h.ResetPassword).Methods(http.MethodPost)
	router.Handle("/logout", mw.JWTMiddleware(http.HandlerFunc(h.Logout))).Methods(http.MethodPost)
	router.Handle("/profile", mw.JWTMiddleware(http.HandlerFunc(h.Profile))).Methods(http.MethodGet)
	router.Handle("/check", mw.JWTMiddleware(http.HandlerFunc(h.Check))).Methods(http.MethodGet)
	router.HandleFunc("/google", h.GoogleLogin).Methods(http.MethodGet)
	router.HandleFunc("/google/callback", h.GoogleCallback).Methods(http.MethodGet)
}

func (h *Handler) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(maxAge.Seconds()),
	}
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, resp *domain.LoginResponse) {
	http.SetCookie(w, h.cookie(handlers.AccessTokenCookie, resp.AccessToken, h.accessMaxAge))
	http.SetCookie(w, h.cookie(refreshTokenCookie, resp.RefreshToken, h.refreshMaxAge))
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{handlers.AccessTokenCookie, refreshTokenCookie} {
		c := h.cookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}

	resp, err := h.deps.Sessions.Register(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	h.setSessionCookies(w, resp)
	response.WriteStatus(w, http.StatusCreated, resp, "User Created Successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	resp, err := h.deps.LocalAuthService.Login(r.Context(), &domain.Users{
		Email:        &email,
		PasswordHash: &req.Password,
		AuthProvider: string(domain.ProviderLocal),
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}
	h.setSessionCookies(w, resp)
	response.WriteSuccess(w, resp, "User Logged In Successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshAccessToken"`
}

// RefreshToken reads the refresh token from its cookie, falling back to the body.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" && r.ContentLength != 0 {
		var req refreshRequest
		if err := handlers.DecodeJSON(r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.WriteError(w, errs.New(errs.KindUnauthorized, "unauthorized request"))
		return
	}

	resp, err := h.deps.Sessions.Refresh(r.Context(), token)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	h.setSessionCookies(w, resp)
	response.WriteSuccess(w, domain.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, "Access Token Refreshed Successfully")
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.deps.Accounts.VerifyEmail(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, user, "User Verified Successfully")
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	user, err := h.deps.Accounts.ResendVerification(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, user, "Resend Email Successfully")
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	user, err := h.deps.Accounts.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"user": user}, "Reset Password link send on given email")
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.deps.Accounts.ResetPassword(r.Context(), mux.Vars(r)["token"], req); err != nil {
		response.WriteError(w, err)
		return
	}
	h.clearSessionCookies(w)
	response.WriteSuccess(w, nil, "Password reset Successfully")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.deps.Sessions.Logout(r.Context(), caller.UserID); err != nil {
		response.WriteError(w, err)
		return
	}
	h.clearSessionCookies(w)
	response.WriteSuccess(w, nil, "User Logged Out!")
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	user, err := h.deps.Sessions.Profile(r.Context(), caller.UserID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, user, "User Profile Fetched Successfully")
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, caller, "User authenticated successfully")
}

// GoogleLogin redirects the user to the Google consent page
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.deps.GGAuthService == nil {
		response.WriteError(w, errs.New(errs.KindNotFound, "Google login is not configured"))
		return
	}
	state := uuid.NewString()
	stateCookie := h.cookie(oauthStateCookie, state, 10*time.Minute)
	// the callback is a cross-site navigation from accounts.google.com
	stateCookie.SameSite = http.SameSiteLaxMode
	http.SetCookie(w, stateCookie)
	http.Redirect(w, r, h.deps.GGAuthService.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.deps.GGAuthService == nil {
		response.WriteError(w, errs.New(errs.KindNotFound, "Google login is not configured"))
		return
	}
	state, err := r.Cookie(oauthStateCookie)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		response.WriteError(w, errs.New(errs.KindUnauthorized, "Invalid oauth state"))
		return
	}

	user, err := h.deps.GGAuthService.UserFromCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Error("Google callback failed", "error", err)
		response.WriteError(w, err)
		return
	}
	resp, err := h.deps.GGAuthService.Login(r.Context(), user)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	h.setSessionCookies(w, resp)
	response.WriteSuccess(w, resp, "User Logged In Successfully")
}
