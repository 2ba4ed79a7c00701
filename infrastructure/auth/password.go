package auth

import (
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var (
	ErrInvalidCredentials = errors.New("invalid e-mail or password")
	ErrEmailExists        = errors.New("an account with this e-mail already exists")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
)

type passwordService struct {
	apiKey  string
	options []option.ClientOption
	log     ports.LoggerPort
	service *identitytoolkit.Service
	mu      sync.Mutex
	now     func() time.Time
}

// NewPasswordService signs users in against the Identity Toolkit relying party
// API of the configured project.
func NewPasswordService(apiKey string, logger ports.LoggerPort, opts ...option.ClientOption) ports.PasswordIdentityPort {
	return &passwordService{
		apiKey:  apiKey,
		options: opts,
		log:     logger,
		now:     time.Now,
	}
}

func (p *passwordService) getService(ctx context.Context) (*identitytoolkit.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.service != nil {
		return p.service, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(p.apiKey)}, p.options...)
	service, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error while create identity toolkit service: %w", err)
	}

	p.service = service
	return service, nil
}

func (p *passwordService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	service, err := p.getService(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	resp, err := service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		p.log.Error("Password sign-in failed for "+email, err)
		return domain.Session{}, mapIdentityError(err)
	}

	return p.sessionFromTokens(resp.IdToken, resp.RefreshToken, resp.LocalId, resp.Email, resp.ExpiresIn)
}

func (p *passwordService) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	service, err := p.getService(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	resp, err := service.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		p.log.Error("Sign-up failed for "+email, err)
		return domain.Session{}, mapIdentityError(err)
	}

	return p.sessionFromTokens(resp.IdToken, resp.RefreshToken, resp.LocalId, resp.Email, resp.ExpiresIn)
}

func (p *passwordService) sessionFromTokens(idToken, refreshToken, localID, email string, expiresIn int64) (domain.Session, error) {
	session := domain.Session{
		UserID:       localID,
		Email:        email,
		Provider:     domain.ProviderPassword,
		IDToken:      idToken,
		RefreshToken: refreshToken,
	}
	if expiresIn > 0 {
		session.ExpiresAt = p.now().Add(time.Duration(expiresIn) * time.Second)
	}

	if idToken == "" {
		return session, nil
	}

	claims, err := ParseIDTokenClaims(idToken)
	if err != nil {
		return domain.Session{}, fmt.Errorf("error while reading id token: %w", err)
	}
	if session.UserID == "" {
		session.UserID = claims.UserID
	}
	if session.Email == "" {
		session.Email = claims.Email
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// mapIdentityError turns the provider's error codes into sentinel errors.
// Codes may carry a suffix such as "WEAK_PASSWORD : Password should be...".
func mapIdentityError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("error in call identity api: %w", err)
	}

	code, _, _ := strings.Cut(gerr.Message, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_EMAIL":
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, code)
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	default:
		return fmt.Errorf("error in call identity api: %w", err)
	}
}
