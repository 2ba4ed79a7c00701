package server

import (
	"TUI_motivation_player/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type OAuthCallbackResult struct {
	Code  string
	Error error
}

// CallbackHandler serves the OAuth redirect for exactly one sign-in attempt.
type CallbackHandler interface {
	ListenAndServe(
		ctx context.Context,
		expectedState,
		addr,
		callbackPath string,
		resultChan chan<- OAuthCallbackResult,
	) *http.Server
}

type callbackHandlerImpl struct {
	logger ports.LoggerPort
}

func NewCallbackHandler(logger ports.LoggerPort) CallbackHandler {
	return &callbackHandlerImpl{
		logger: logger,
	}
}

// handleCallback validates the redirect and reports the outcome once.
// resultChan must have room for one result.
func (h *callbackHandlerImpl) handleCallback(expectedState string, resultChan chan<- OAuthCallbackResult, done func()) http.HandlerFunc {
	var once sync.Once
	report := func(res OAuthCallbackResult) {
		once.Do(func() {
			select {
			case resultChan <- res:
			default:
				h.logger.Warning("OAuth callback result dropped, nobody is waiting")
			}
			done()
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if state := q.Get("state"); state != expectedState {
			err := fmt.Errorf("invalid CSRF state: got %q", state)
			h.logger.Error("OAuth state mismatch", err)
			http.Error(w, "Invalid state. Please try the authentication process again.", http.StatusBadRequest)
			report(OAuthCallbackResult{Error: err})
			return
		}

		if authErr := q.Get("error"); authErr != "" {
			errMsg := fmt.Errorf("authorization error from provider: %s", authErr)
			if desc := q.Get("error_description"); desc != "" {
				errMsg = fmt.Errorf("authorization error from provider: %s - %s", authErr, desc)
			}
			h.logger.Error("OAuth provider error", errMsg)
			http.Error(w, "An error occurred during authorization with the provider. You can close this tab.", http.StatusUnauthorized)
			report(OAuthCallbackResult{Error: errMsg})
			return
		}

		code := q.Get("code")
		if code == "" {
			h.logger.Warning("Authorization code not found in callback")
			http.Error(w, "Authorization code not found in the request.", http.StatusBadRequest)
			report(OAuthCallbackResult{Error: errors.New("authorization code missing from callback")})
			return
		}

		fmt.Fprint(w, "Signed in! You can close this browser tab.")
		h.logger.Info("Authorization code received")
		report(OAuthCallbackResult{Code: code})
	}
}

func (h *callbackHandlerImpl) ListenAndServe(
	ctx context.Context,
	expectedState string,
	addr string,
	callbackPath string,
	resultChan chan<- OAuthCallbackResult,
) *http.Server {
	handlerDone := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, h.handleCallback(expectedState, resultChan, func() { close(handlerDone) }))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		h.logger.Info("Starting callback server on " + addr + callbackPath)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			wrappedErr := fmt.Errorf("callback server failed: %w", err)
			h.logger.Error("Callback server failed", wrappedErr)

			select {
			case resultChan <- OAuthCallbackResult{Error: wrappedErr}:
			default:
			}
		}
	}()

	go func() {
		select {
		case <-handlerDone:
			h.logger.Info("Callback handled, shutting down callback server")
		case <-ctx.Done():
			h.logger.Info("Callback server context done: " + ctx.Err().Error())
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("Error shutting down callback server", err)
		}
	}()

	return httpServer
}
