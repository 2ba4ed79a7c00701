package token_manager

import (
	"TUI_motivation_player/internal/core/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by LoadSession when nothing was saved yet.
var ErrNoSession = errors.New("no saved session")

type sessionStoreImpl struct {
	SessionFilePath string
}

type SessionStore interface {
	DeleteLocalSession() error
	LoadSession() (domain.Session, error)
	SaveSession(session domain.Session) error
}

func NewSessionStore(sessionFilePath string) SessionStore {
	if sessionFilePath == "" {
		sessionFilePath = "session.json"
	}

	return &sessionStoreImpl{
		SessionFilePath: sessionFilePath,
	}
}

func (t *sessionStoreImpl) DeleteLocalSession() error {
	err := os.Remove(t.SessionFilePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("não foi possível remover o arquivo de sessão: %w", err)
	}

	return nil
}

func (t *sessionStoreImpl) LoadSession() (domain.Session, error) {
	file, err := os.Open(t.SessionFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("falha ao abrir arquivo de sessão %s: %w", t.SessionFilePath, err)
	}
	defer file.Close()

	var session domain.Session
	if err := json.NewDecoder(file).Decode(&session); err != nil {
		return domain.Session{}, fmt.Errorf("falha ao decodificar sessão do arquivo %s: %w", t.SessionFilePath, err)
	}

	if session.IDToken == "" && session.AccessToken == "" && session.RefreshToken == "" {
		return domain.Session{}, fmt.Errorf("sessão inválida: nenhum token presente")
	}

	return session, nil
}

// SaveSession writes through a temp file so a crash never leaves half a session.
func (t *sessionStoreImpl) SaveSession(session domain.Session) error {
	if dir := filepath.Dir(t.SessionFilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	tmp := t.SessionFilePath + ".tmp"
	file, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("não foi possível abrir/criar o arquivo de sessão %s: %w", tmp, err)
	}

	if err := json.NewEncoder(file).Encode(session); err != nil {
		file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode session: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close session file: %w", err)
	}

	return os.Rename(tmp, t.SessionFilePath)
}
