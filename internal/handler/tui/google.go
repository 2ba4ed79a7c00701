package tui

import (
	"context"
	"fmt"
	"strings"

	"TUI_motivation_player/infrastructure/auth"
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"TUI_motivation_player/internal/handler/server"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Every message carries the CSRF state of the flow that produced it, so a
// result from an abandoned attempt is ignored.
type authURLGeneratedMsg struct{ flow, url string }
type authCodeMsg struct{ flow, code string }
type authSessionMsg struct {
	flow    string
	session domain.Session
}
type authErrorMsg struct {
	flow string
	err  error
}

type googleLoginState int

const (
	googleIdle googleLoginState = iota
	googleAuthURLGenerated
	googleWaitingForCallback
	googleExchangingToken
	googleSuccess
	googleError
)

// GoogleLoginModel runs the federated sign-in: consent page in the browser,
// code delivered to the loopback callback server, code exchanged for a session.
type GoogleLoginModel struct {
	parent           *AppModel
	state            googleLoginState
	authURL          string
	errorMsg         string
	statusMsg        string
	csrfState        string
	httpServerCancel context.CancelFunc
}

func NewGoogleLoginModel(parent *AppModel) *GoogleLoginModel {
	return &GoogleLoginModel{
		parent: parent,
		state:  googleIdle,
	}
}

func (m *GoogleLoginModel) Init() tea.Cmd {
	m.state = googleAuthURLGenerated
	m.errorMsg = ""
	m.statusMsg = "Generating Google sign-in link..."
	m.csrfState = uuid.NewString()
	return generateAuthURLCmd(m.parent.deps.AuthService, m.csrfState)
}

// Stop shuts the callback server down if it is still waiting.
func (m *GoogleLoginModel) Stop() {
	if m.httpServerCancel != nil {
		m.httpServerCancel()
		m.httpServerCancel = nil
	}
}

func generateAuthURLCmd(authService auth.AuthenticationService, state string) tea.Cmd {
	return func() tea.Msg {
		return authURLGeneratedMsg{flow: state, url: authService.GenerateAuthURL(state)}
	}
}

func waitForCallbackCmd(
	ctx context.Context,
	callbackHandler server.CallbackHandler,
	expectedState string,
	addr string,
	log ports.LoggerPort,
) tea.Cmd {
	return func() tea.Msg {
		resultChan := make(chan server.OAuthCallbackResult, 1)
		_ = callbackHandler.ListenAndServe(ctx, expectedState, addr, "/", resultChan)

		log.Info("Waiting for OAuth callback on " + addr)
		select {
		case res := <-resultChan:
			if res.Error != nil {
				return authErrorMsg{flow: expectedState, err: fmt.Errorf("callback error: %w", res.Error)}
			}
			return authCodeMsg{flow: expectedState, code: res.Code}
		case <-ctx.Done():
			return authErrorMsg{flow: expectedState, err: fmt.Errorf("sign-in cancelled: %w", ctx.Err())}
		}
	}
}

func exchangeCodeCmd(ctx context.Context, authService auth.AuthenticationService, flow, code string) tea.Cmd {
	return func() tea.Msg {
		session, err := authService.ExchangeCodeForSession(ctx, code)
		if err != nil {
			return authErrorMsg{flow: flow, err: fmt.Errorf("token exchange failed: %w", err)}
		}
		return authSessionMsg{flow: flow, session: session}
	}
}

func (m *GoogleLoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.Stop()
			return m, m.parent.send(showLoginMsg{})
		case tea.KeyEnter:
			if m.state == googleError {
				return m, m.Init()
			}
		}

	case authURLGeneratedMsg:
		if msg.flow != m.csrfState {
			return m, nil
		}
		m.authURL = msg.url
		m.state = googleWaitingForCallback
		m.statusMsg = "Open this link in your browser to sign in:"

		if err := m.parent.deps.OpenURL(m.authURL); err != nil {
			m.parent.logger.Error("Could not open the browser", err)
		}

		serverCtx, serverCancel := context.WithCancel(m.parent.appContext)
		m.httpServerCancel = serverCancel

		return m, waitForCallbackCmd(serverCtx, m.parent.deps.CallbackHandler, m.csrfState, m.parent.deps.CallbackAddr, m.parent.logger)

	case authCodeMsg:
		if msg.flow != m.csrfState {
			return m, nil
		}
		m.Stop()
		m.state = googleExchangingToken
		m.statusMsg = "Code received, exchanging for a session..."
		return m, exchangeCodeCmd(m.parent.appContext, m.parent.deps.AuthService, m.csrfState, msg.code)

	case authSessionMsg:
		if msg.flow != m.csrfState {
			return m, nil
		}
		m.state = googleSuccess
		m.statusMsg = "Signed in, loading videos..."
		m.errorMsg = ""
		m.parent.deps.Sessions.SignIn(msg.session)
		return m, nil

	case authErrorMsg:
		if msg.flow != m.csrfState {
			return m, nil
		}
		m.Stop()
		m.state = googleError
		m.errorMsg = fmt.Sprintf("Google sign-in failed: %v", msg.err)
		m.statusMsg = "Press Enter to try again, Esc to go back."
		m.parent.logger.Error("Google sign-in error", msg.err)
	}

	return m, nil
}

func (m *GoogleLoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign in with Google"))
	b.WriteString("\n\n")

	if m.errorMsg != "" {
		b.WriteString(errorMessageStyle.Render(m.errorMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusMsg)
	b.WriteString("\n")

	if m.state == googleWaitingForCallback && m.authURL != "" {
		b.WriteString(urlStyle.Render(m.authURL))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("Waiting for the browser to finish..."))
	}

	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("(esc to go back, ctrl+c to quit)"))
	return docStyle.Render(b.String())
}
