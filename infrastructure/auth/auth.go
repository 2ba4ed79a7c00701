package auth

import (
	"TUI_motivation_player/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const revokeURL = "https://oauth2.googleapis.com/revoke"

// GoogleScopes are the scopes needed to learn who signed in.
var GoogleScopes = []string{"openid", oauth2api.UserinfoEmailScope}

var ErrNoRefreshToken = errors.New("session has no refresh token")

type authenticationServiceImpl struct {
	oauthConfig     *oauth2.Config
	userinfoOptions []option.ClientOption
	httpClient      *http.Client
}

// AuthenticationService runs the Google federated sign-in.
type AuthenticationService interface {
	GenerateAuthURL(state string) string
	ExchangeCodeForSession(ctx context.Context, code string) (domain.Session, error)
	RefreshSession(ctx context.Context, session domain.Session) (domain.Session, error)
	RevokeToken(ctx context.Context, tokenToRevoke string) error
}

// NewAuthenticationService reads the OAuth client from clientSecretFilePath.
// userinfoOpts are passed to the userinfo client, mainly to point it elsewhere.
func NewAuthenticationService(scopes []string, clientSecretFilePath, redirectURL string, userinfoOpts ...option.ClientOption) (AuthenticationService, error) {
	config, err := loadConfig(scopes, clientSecretFilePath)
	if err != nil {
		return nil, fmt.Errorf("não foi possível carregar a configuração do cliente: %w", err)
	}

	config.RedirectURL = redirectURL

	return &authenticationServiceImpl{
		oauthConfig:     config,
		userinfoOptions: userinfoOpts,
		httpClient:      http.DefaultClient,
	}, nil
}

func loadConfig(scopes []string, clientSecretFilePath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(clientSecretFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read client secret file (%s): %w", clientSecretFilePath, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("could not parse client secret JSON: %w", err)
	}

	return config, nil
}

func (a *authenticationServiceImpl) GenerateAuthURL(state string) string {
	return a.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (a *authenticationServiceImpl) ExchangeCodeForSession(ctx context.Context, code string) (domain.Session, error) {
	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return domain.Session{}, fmt.Errorf("não foi possível trocar o código de autorização por um token: %w", err)
	}

	return a.sessionFromToken(ctx, token)
}

// RefreshSession renews an expired Google session with its refresh token.
func (a *authenticationServiceImpl) RefreshSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.RefreshToken == "" {
		return domain.Session{}, ErrNoRefreshToken
	}

	stale := &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Expiry:       session.ExpiresAt,
	}

	refreshed, err := a.oauthConfig.TokenSource(ctx, stale).Token()
	if err != nil {
		return domain.Session{}, fmt.Errorf("não foi possível atualizar o token: %w", err)
	}

	// Google omits the refresh token on refresh responses
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = session.RefreshToken
	}

	return a.sessionFromToken(ctx, refreshed)
}

func (a *authenticationServiceImpl) sessionFromToken(ctx context.Context, token *oauth2.Token) (domain.Session, error) {
	opts := append([]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}, a.userinfoOptions...)

	service, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return domain.Session{}, fmt.Errorf("error while create userinfo service: %w", err)
	}

	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return domain.Session{}, fmt.Errorf("error while fetching google userinfo: %w", err)
	}

	session := domain.Session{
		UserID:       info.Id,
		Email:        info.Email,
		Provider:     domain.ProviderGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if idToken, ok := token.Extra("id_token").(string); ok {
		session.IDToken = idToken
	}

	return session, nil
}

func (a *authenticationServiceImpl) RevokeToken(ctx context.Context, tokenToRevoke string) error {
	if tokenToRevoke == "" {
		return nil
	}

	data := url.Values{}
	data.Set("token", tokenToRevoke)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL+"?"+data.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao enviar requisição de revogação de token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("falha ao revogar o token, status: %s", resp.Status)
	}

	return nil
}
