package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Users struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserName     string    `db:"user_name" json:"username"`
	Email        *string   `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	AuthProvider string    `db:"auth_provider" json:"authProvider"`
	GoogleID     *string   `db:"google_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	IsEmailVerified bool `db:"is_email_verified" json:"isEmailVerified"`

	// token columns hold sha256 hex digests, never the mailed token
	EmailVerificationToken  *string    `db:"email_verification_token" json:"-"`
	EmailVerificationExpiry *time.Time `db:"email_verification_expiry" json:"-"`
	ForgotPasswordToken     *string    `db:"forgot_password_token" json:"-"`
	ForgotPasswordExpiry    *time.Time `db:"forgot_password_expiry" json:"-"`
}

type UsersTable struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         string
	AuthProvider string
	GoogleID     string
	CreatedAt    string

	IsEmailVerified         string
	EmailVerificationToken  string
	EmailVerificationExpiry string
	ForgotPasswordToken     string
	ForgotPasswordExpiry    string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		UserName:     "user_name",
		Email:        "email",
		PasswordHash: "password_hash",
		Role:         "role",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
		CreatedAt:    "created_at",

		IsEmailVerified:         "is_email_verified",
		EmailVerificationToken:  "email_verification_token",
		EmailVerificationExpiry: "email_verification_expiry",
		ForgotPasswordToken:     "forgot_password_token",
		ForgotPasswordExpiry:    "forgot_password_expiry",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.UserName, t.Email, t.PasswordHash, t.Role, t.AuthProvider, t.GoogleID, t.CreatedAt,
		t.IsEmailVerified, t.EmailVerificationToken, t.EmailVerificationExpiry, t.ForgotPasswordToken, t.ForgotPasswordExpiry,
	}
}
