package tui

import (
	"context"
	"fmt"

	"TUI_motivation_player/infrastructure/auth"
	"TUI_motivation_player/infrastructure/logger"
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"TUI_motivation_player/internal/core/usecases"
	"TUI_motivation_player/internal/handler/server"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

type currentView int

const (
	viewLogin currentView = iota
	viewGoogleLogin
	viewPlayer
)

// SelectionPublisher receives every selection change for the player page.
type SelectionPublisher interface {
	SetSelection(snap server.SelectionSnapshot)
}

// PlayerEvents hands out player state subscriptions.
type PlayerEvents interface {
	Subscribe(buffer int) (<-chan domain.PlayerState, func())
}

// Dependencies are constructed by the caller and owned by it.
// AuthService and PasswordService may be nil when not configured.
type Dependencies struct {
	AuthService     auth.AuthenticationService
	PasswordService ports.PasswordIdentityPort
	CallbackHandler server.CallbackHandler
	PlaybackUseCase usecases.PlaybackUseCase
	Sessions        *auth.SessionWatcher
	Selection       SelectionPublisher
	PlayerEvents    PlayerEvents
	Logger          logger.Logger
	PlayerURL       string
	CallbackAddr    string
	OpenURL         func(url string) error
}

type AppModel struct {
	deps   Dependencies
	logger logger.Logger

	loginModel  *LoginModel
	googleModel *GoogleLoginModel
	playerModel *PlayerModel

	currentView currentView
	session     *domain.Session
	activations int

	sessionEvents      chan *domain.Session
	unsubscribeSession func()

	appContext context.Context
	cancelApp  context.CancelFunc

	width  int
	height int
}

func NewAppModel(deps Dependencies) *AppModel {
	if deps.OpenURL == nil {
		deps.OpenURL = browser.OpenURL
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	appCtx, cancel := context.WithCancel(context.Background())

	m := &AppModel{
		deps:          deps,
		logger:        deps.Logger.Named("tui"),
		sessionEvents: make(chan *domain.Session, 8),
		appContext:    appCtx,
		cancelApp:     cancel,
	}

	m.loginModel = NewLoginModel(m)
	m.googleModel = NewGoogleLoginModel(m)
	m.currentView = viewLogin

	return m
}

// Navigation and session messages used by the sub-models.
type showLoginMsg struct{}
type showGoogleLoginMsg struct{}
type sessionChangedMsg struct{ session *domain.Session }
type sessionRestoreDoneMsg struct{ restored bool }

func (m *AppModel) send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *AppModel) Init() tea.Cmd {
	m.unsubscribeSession = m.deps.Sessions.Subscribe(func(s *domain.Session) {
		select {
		case m.sessionEvents <- s:
		default:
			m.logger.Warning("Session event dropped")
		}
	})

	return tea.Batch(m.waitForSession(), m.restoreSessionCmd())
}

func (m *AppModel) waitForSession() tea.Cmd {
	ch := m.sessionEvents
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return sessionChangedMsg{session: s}
	}
}

func (m *AppModel) restoreSessionCmd() tea.Cmd {
	var refresher auth.SessionRefresher
	if m.deps.AuthService != nil {
		refresher = m.deps.AuthService
	}
	return func() tea.Msg {
		_, ok := m.deps.Sessions.Restore(m.appContext, refresher)
		if ok {
			m.logger.Info("Saved session restored")
		} else {
			m.logger.Info("No usable saved session, showing sign-in")
		}
		return sessionRestoreDoneMsg{restored: ok}
	}
}

// shutdown releases every subscription the app holds.
func (m *AppModel) shutdown() {
	if m.playerModel != nil {
		m.playerModel.Teardown()
		m.playerModel = nil
	}
	if m.unsubscribeSession != nil {
		m.unsubscribeSession()
		m.unsubscribeSession = nil
	}
	m.cancelApp()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.logger.Info("Ctrl+C pressed, quitting")
			m.shutdown()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case sessionChangedMsg:
		cmds = append(cmds, m.waitForSession(), m.applySession(msg.session))
		return m, tea.Batch(cmds...)

	case sessionRestoreDoneMsg:
		return m, nil

	case showLoginMsg:
		m.currentView = viewLogin
		return m, m.loginModel.Init()

	case showGoogleLoginMsg:
		m.currentView = viewGoogleLogin
		m.googleModel = NewGoogleLoginModel(m)
		return m, m.googleModel.Init()

	case quitMsg:
		m.shutdown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewLogin:
		_, cmd = m.loginModel.Update(msg)
	case viewGoogleLogin:
		_, cmd = m.googleModel.Update(msg)
	case viewPlayer:
		if m.playerModel != nil {
			_, cmd = m.playerModel.Update(msg)
		}
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applySession moves between the sign-in screens and the player whenever the
// watcher reports a change.
func (m *AppModel) applySession(session *domain.Session) tea.Cmd {
	m.session = session

	if session == nil {
		if m.playerModel != nil {
			m.playerModel.Teardown()
			m.playerModel = nil
		}
		if m.currentView == viewGoogleLogin {
			return nil
		}
		m.currentView = viewLogin
		return m.loginModel.Init()
	}

	if m.currentView == viewPlayer && m.playerModel != nil {
		return nil
	}

	m.googleModel.Stop()
	m.activations++
	m.playerModel = NewPlayerModel(m, m.activations)
	m.currentView = viewPlayer
	m.logger.Info(fmt.Sprintf("Player activated (#%d) for %s", m.activations, session.Email))

	return m.playerModel.Init()
}

type quitMsg struct{}

func (m *AppModel) View() string {
	switch m.currentView {
	case viewLogin:
		return m.loginModel.View()
	case viewGoogleLogin:
		return m.googleModel.View()
	case viewPlayer:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
	}
	return "Unknown view…"
}
