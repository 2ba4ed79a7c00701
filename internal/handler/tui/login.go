package tui

import (
	"TUI_motivation_player/internal/core/domain"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type passwordAuthMsg struct {
	session domain.Session
	err     error
}

const (
	fieldEmail = iota
	fieldPassword
)

// LoginModel is the e-mail/password form. ctrl+s toggles sign-up, ctrl+g
// switches to the Google flow.
type LoginModel struct {
	parent     *AppModel
	inputs     []textinput.Model
	focused    int
	isSignUp   bool
	submitting bool
	errorMsg   string
	statusMsg  string
}

func NewLoginModel(parent *AppModel) *LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return &LoginModel{
		parent: parent,
		inputs: []textinput.Model{email, password},
	}
}

func (m *LoginModel) Init() tea.Cmd {
	m.submitting = false
	m.errorMsg = ""
	m.statusMsg = ""
	m.inputs[fieldPassword].SetValue("")
	return m.focus(fieldEmail)
}

func (m *LoginModel) focus(i int) tea.Cmd {
	m.focused = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[i].Focus()
}

func (m *LoginModel) passwordEnabled() bool {
	return m.parent.deps.PasswordService != nil
}

func (m *LoginModel) googleEnabled() bool {
	return m.parent.deps.AuthService != nil
}

func (m *LoginModel) submitCmd(email, password string, signUp bool) tea.Cmd {
	svc := m.parent.deps.PasswordService
	ctx := m.parent.appContext
	return func() tea.Msg {
		var (
			session domain.Session
			err     error
		)
		if signUp {
			session, err = svc.SignUp(ctx, email, password)
		} else {
			session, err = svc.SignIn(ctx, email, password)
		}
		return passwordAuthMsg{session: session, err: err}
	}
}

func (m *LoginModel) validate() (string, string, error) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if email == "" || password == "" {
		return "", "", errors.New("e-mail and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", errors.New("invalid e-mail address")
	}
	return email, password, nil
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case passwordAuthMsg:
		m.submitting = false
		if msg.err != nil {
			m.parent.logger.Error("Authentication error", msg.err)
			m.errorMsg = fmt.Sprintf("Sign-in failed: %v", msg.err)
			m.statusMsg = ""
			return m, nil
		}
		m.errorMsg = ""
		m.statusMsg = "Signed in, loading videos..."
		m.parent.deps.Sessions.SignIn(msg.session)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, m.parent.send(quitMsg{})

		case tea.KeyCtrlG:
			if !m.googleEnabled() {
				m.errorMsg = "Google sign-in is not configured (missing client secret file)."
				return m, nil
			}
			return m, m.parent.send(showGoogleLoginMsg{})

		case tea.KeyCtrlS:
			m.isSignUp = !m.isSignUp
			m.errorMsg = ""
			return m, nil

		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return m, m.focus((m.focused + 1) % len(m.inputs))

		case tea.KeyEnter:
			if m.focused == fieldEmail {
				return m, m.focus(fieldPassword)
			}
			if !m.passwordEnabled() {
				m.errorMsg = "Password sign-in is not configured (missing FIREBASE_API_KEY)."
				return m, nil
			}
			email, password, err := m.validate()
			if err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			m.submitting = true
			m.errorMsg = ""
			if m.isSignUp {
				m.statusMsg = "Creating account..."
			} else {
				m.statusMsg = "Signing in..."
			}
			return m, m.submitCmd(email, password, m.isSignUp)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := "Gym Motivation Portal 💪"
	action := "Sign In"
	toggle := "Need an account? ctrl+s to sign up"
	if m.isSignUp {
		title = "Sign Up"
		action = "Sign Up"
		toggle = "Already have an account? ctrl+s to sign in"
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	labels := []string{"Email address", "Password"}
	for i, in := range m.inputs {
		label := fieldLabelStyle
		if i == m.focused {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if m.errorMsg != "" {
		b.WriteString(errorMessageStyle.Render(m.errorMsg))
		b.WriteString("\n\n")
	}
	if m.statusMsg != "" {
		b.WriteString(statusMessageStyle.Render(m.statusMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(promptStyle.Render(fmt.Sprintf("enter: %s • tab: next field • %s", action, toggle)))
	b.WriteString("\n")
	if m.googleEnabled() {
		b.WriteString(promptStyle.Render("ctrl+g: sign in with Google"))
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("(esc or ctrl+c to quit)"))

	return docStyle.Render(b.String())
}
