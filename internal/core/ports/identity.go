package ports

import (
	"TUI_motivation_player/internal/core/domain"
	"context"
)

// PasswordIdentityPort is the e-mail/password side of the identity provider.
type PasswordIdentityPort interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password string) (domain.Session, error)
}
