package errs

import "errors"

var InvalidCredentials = errors.New("invalid username or password")

var (
	InternalError       = errors.New("internal error")
	GeneratingToken     = errors.New("error generating token")
	EmailRequired       = errors.New("email is required")
	UserAlreadyExists   = errors.New("user already exist")
	FailedToCreateUser  = errors.New("failed to create user")
	MissingAccessToken  = errors.New("unauthorized request - missing access token")
	InvalidAccessToken  = errors.New("invalid access token")
	MissingRefreshToken = errors.New("unauthorized request")
	InvalidRefreshToken = errors.New("invalid refresh token")
	RefreshTokenReused  = errors.New("refresh token is expired or used")
	AdminOnly           = errors.New("access denied - admin only")
)

var (
	InvalidVerificationToken = errors.New("invalid token")
	VerificationTokenExpired = errors.New("verification token expired")
	UserNotRegistered        = errors.New("user not registered")
	UserNotFound             = errors.New("user not found")
	EmailAlreadyVerified     = errors.New("email is already verified")
	ResetTokenInvalid        = errors.New("token is invalid or has expired")
	PasswordMismatch         = errors.New("password mismatch")
)
