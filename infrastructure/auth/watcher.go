package auth

import (
	"TUI_motivation_player/infrastructure/token_manager"
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// SessionListener receives the new session, or nil after sign-out.
type SessionListener func(session *domain.Session)

// SessionRefresher renews an expired session. AuthenticationService is one.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, session domain.Session) (domain.Session, error)
}

// SessionWatcher owns the signed-in session and tells subscribers whenever it
// changes. Sessions are persisted through the store so they survive restarts.
type SessionWatcher struct {
	mu        sync.Mutex
	store     token_manager.SessionStore
	log       ports.LoggerPort
	current   *domain.Session
	listeners map[int]SessionListener
	nextID    int
	now       func() time.Time
}

func NewSessionWatcher(store token_manager.SessionStore, logger ports.LoggerPort) *SessionWatcher {
	return &SessionWatcher{
		store:     store,
		log:       logger,
		listeners: make(map[int]SessionListener),
		now:       time.Now,
	}
}

func (w *SessionWatcher) Current() (domain.Session, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return domain.Session{}, false
	}
	return *w.current, true
}

// Subscribe registers fn and immediately calls it with the current session.
// The returned func removes the subscription; calling it twice is harmless.
func (w *SessionWatcher) Subscribe(fn SessionListener) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	current := w.snapshot()
	w.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

func (w *SessionWatcher) SignIn(session domain.Session) {
	if err := w.store.SaveSession(session); err != nil {
		// still signed in for this run
		w.log.Error("Could not persist session", err)
	}

	w.set(&session)
	w.log.Info(fmt.Sprintf("Signed in as %s via %s", session.Email, session.Provider))
}

func (w *SessionWatcher) SignOut() error {
	err := w.store.DeleteLocalSession()
	w.set(nil)
	w.log.Info("Signed out")
	if err != nil {
		return fmt.Errorf("error while deleting saved session: %w", err)
	}
	return nil
}

// Restore loads the saved session. Expired Google sessions are refreshed with
// refresher when one is given; any other expired session is discarded.
func (w *SessionWatcher) Restore(ctx context.Context, refresher SessionRefresher) (domain.Session, bool) {
	session, err := w.store.LoadSession()
	if err != nil {
		if !errors.Is(err, token_manager.ErrNoSession) {
			w.log.Error("Saved session unreadable, discarding", err)
			_ = w.store.DeleteLocalSession()
		}
		return domain.Session{}, false
	}

	if session.Expired(w.now()) {
		if session.Provider != domain.ProviderGoogle || refresher == nil {
			w.log.Info("Saved session expired, sign-in required")
			_ = w.store.DeleteLocalSession()
			return domain.Session{}, false
		}

		refreshed, err := refresher.RefreshSession(ctx, session)
		if err != nil {
			w.log.Error("Could not refresh saved session", err)
			_ = w.store.DeleteLocalSession()
			return domain.Session{}, false
		}
		session = refreshed
	}

	w.SignIn(session)
	return session, true
}

func (w *SessionWatcher) set(session *domain.Session) {
	w.mu.Lock()
	w.current = session
	current := w.snapshot()
	ids := make([]int, 0, len(w.listeners))
	for id := range w.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]SessionListener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, w.listeners[id])
	}
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(current)
	}
}

// snapshot must be called with mu held.
func (w *SessionWatcher) snapshot() *domain.Session {
	if w.current == nil {
		return nil
	}
	s := *w.current
	return &s
}
