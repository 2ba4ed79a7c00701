package domain

import "time"

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Session is the signed-in user as reported by the identity provider.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Provider     string    `json:"provider"`
	IDToken      string    `json:"id_token,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
