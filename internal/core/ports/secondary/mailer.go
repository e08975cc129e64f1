package secondary

import "context"

// Mailer delivers account emails. Links are absolute and carry the raw token.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, link string) error
	SendPasswordReset(ctx context.Context, to, username, link string) error
}
