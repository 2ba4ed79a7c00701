package tui

import (
	"context"
	"strings"
	"testing"

	"TUI_motivation_player/infrastructure/auth"
	"TUI_motivation_player/internal/core/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type fakePassword struct {
	session  domain.Session
	err      error
	signUps  int
	signIns  int
	gotEmail string
}

func (f *fakePassword) SignIn(_ context.Context, email, _ string) (domain.Session, error) {
	f.signIns++
	f.gotEmail = email
	return f.session, f.err
}

func (f *fakePassword) SignUp(_ context.Context, email, _ string) (domain.Session, error) {
	f.signUps++
	f.gotEmail = email
	return f.session, f.err
}

func fillLogin(m *LoginModel, email, password string) {
	m.inputs[fieldEmail].SetValue(email)
	m.inputs[fieldPassword].SetValue(password)
	m.focus(fieldPassword)
}

func TestLoginEnterMovesToPassword(t *testing.T) {
	ta := newTestApp(t, Dependencies{PasswordService: &fakePassword{}})

	ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if ta.app.loginModel.focused != fieldPassword {
		t.Fatalf("expected password focus, got %d", ta.app.loginModel.focused)
	}
	ta.app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if ta.app.loginModel.focused != fieldEmail {
		t.Fatalf("tab should cycle back to e-mail, got %d", ta.app.loginModel.focused)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := &fakePassword{}
	ta := newTestApp(t, Dependencies{PasswordService: svc})
	m := ta.app.loginModel

	fillLogin(m, "", "")
	ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.errorMsg, "required") {
		t.Errorf("expected required error, got %q", m.errorMsg)
	}

	fillLogin(m, "not-an-email", "secret1")
	ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.errorMsg, "invalid e-mail") {
		t.Errorf("expected invalid e-mail error, got %q", m.errorMsg)
	}

	if svc.signIns != 0 {
		t.Error("invalid input must not reach the provider")
	}
}

func TestLoginSuccessSignsIn(t *testing.T) {
	svc := &fakePassword{session: domain.Session{UserID: "u1", Email: "ana@example.com", Provider: domain.ProviderPassword, IDToken: "tok"}}
	ta := newTestApp(t, Dependencies{PasswordService: svc})

	fillLogin(ta.app.loginModel, "  ana@example.com ", "secret1")
	_, cmd := ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !ta.app.loginModel.submitting {
		t.Fatal("expected submitting state")
	}

	// keys are ignored while a request is in flight
	ta.app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if ta.app.loginModel.isSignUp {
		t.Error("mode must not change while submitting")
	}

	ta.app.Update(cmd())
	if svc.signIns != 1 || svc.gotEmail != "ana@example.com" {
		t.Fatalf("unexpected provider call: signIns=%d email=%q", svc.signIns, svc.gotEmail)
	}

	current, ok := ta.sessions.Current()
	if !ok || current.Email != "ana@example.com" {
		t.Fatalf("watcher not signed in: %+v", current)
	}

	ta.deliverSession(t)
	if ta.app.currentView != viewPlayer {
		t.Errorf("expected player view, got %v", ta.app.currentView)
	}
}

func TestSignUpMode(t *testing.T) {
	svc := &fakePassword{session: domain.Session{UserID: "u2", Email: "new@example.com", IDToken: "tok"}}
	ta := newTestApp(t, Dependencies{PasswordService: svc})

	ta.app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(ta.app.View(), "Sign Up") {
		t.Fatalf("expected sign-up form:\n%s", ta.app.View())
	}

	fillLogin(ta.app.loginModel, "new@example.com", "secret1")
	_, cmd := ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ta.app.Update(cmd())

	if svc.signUps != 1 || svc.signIns != 0 {
		t.Errorf("expected a sign-up call, got signUps=%d signIns=%d", svc.signUps, svc.signIns)
	}
}

func TestLoginFailureShowsError(t *testing.T) {
	svc := &fakePassword{err: auth.ErrInvalidCredentials}
	ta := newTestApp(t, Dependencies{PasswordService: svc})

	fillLogin(ta.app.loginModel, "ana@example.com", "wrong-pass")
	_, cmd := ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ta.app.Update(cmd())

	m := ta.app.loginModel
	if m.submitting {
		t.Error("submitting should be cleared")
	}
	if !strings.Contains(m.errorMsg, auth.ErrInvalidCredentials.Error()) {
		t.Errorf("unexpected error message %q", m.errorMsg)
	}
	if _, ok := ta.sessions.Current(); ok {
		t.Error("failed sign-in must not create a session")
	}
	if ta.app.currentView != viewLogin {
		t.Errorf("expected to stay on login, got %v", ta.app.currentView)
	}
}

func TestLoginWithoutProviders(t *testing.T) {
	ta := newTestApp(t, Dependencies{})

	fillLogin(ta.app.loginModel, "ana@example.com", "secret1")
	ta.app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(ta.app.loginModel.errorMsg, "not configured") {
		t.Errorf("expected password disabled message, got %q", ta.app.loginModel.errorMsg)
	}

	ta.app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if ta.app.currentView != viewLogin || !strings.Contains(ta.app.loginModel.errorMsg, "Google sign-in is not configured") {
		t.Errorf("ctrl+g must not leave login without an auth service: %q", ta.app.loginModel.errorMsg)
	}
}

func TestLoginEscQuits(t *testing.T) {
	ta := newTestApp(t, Dependencies{})

	_, cmd := ta.app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(quitMsg); !ok {
		t.Fatal("esc on the login form should quit")
	}
}
