// Package session owns the signed-in identity of the process. A Manager
// derives its state from the token in a securestore.Store, drops it when the
// token expires or the API rejects it, and never holds a session it could
// not also restore after a restart.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
)

var (
	// ErrDecode is returned by Login for a token whose claims cannot be read.
	ErrDecode = errors.New("session: token cannot be decoded")

	// ErrTokenExpired is returned by Login for a token already outside its
	// validity window.
	ErrTokenExpired = errors.New("session: token expired")
)

// Session is the authenticated identity behind the current token.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Manager is safe for concurrent use.
type Manager struct {
	store  securestore.Store
	bus    *eventx.Bus
	logger *slog.Logger
	grace  time.Duration
	now    func() time.Time

	// storeMu orders every store write with the state change it belongs
	// to. It is taken before mu and never held while notifying.
	storeMu sync.Mutex

	mu      sync.RWMutex
	state   State
	current *Session
	// expiryHandled is set by Expire so the event it triggers is not
	// applied a second time to whatever session follows.
	expiryHandled bool

	ready     chan struct{}
	readyOnce sync.Once

	watchMu  sync.Mutex
	watchers map[uint64]func(State)
	watchID  uint64

	unsubscribe func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithGrace overrides jwtx.DefaultGrace.
func WithGrace(d time.Duration) Option {
	return func(m *Manager) { m.grace = d }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// New builds a Manager in StateUnknown and subscribes it to
// eventx.EventAuthenticationExpired on bus. Call Restore next.
func New(store securestore.Store, bus *eventx.Bus, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		bus:      bus,
		logger:   slog.Default(),
		grace:    jwtx.DefaultGrace,
		now:      time.Now,
		state:    StateUnknown,
		ready:    make(chan struct{}),
		watchers: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.grace < 0 {
		m.grace = 0
	}

	if bus != nil {
		m.unsubscribe = bus.Subscribe(eventx.EventAuthenticationExpired, m.onExpiredEvent)
	} else {
		m.unsubscribe = func() {}
	}
	return m
}

// Close detaches the manager from the event bus. It is safe to call twice.
func (m *Manager) Close() {
	m.unsubscribe()
}

// Restore loads the stored token and resolves StateUnknown. A token that
// does not decode or has expired is deleted so the store and the in-memory
// state agree. A storage read failure counts as no token. Once Login,
// Logout or an earlier Restore has resolved the state, Restore leaves both
// memory and the store alone and returns that state.
func (m *Manager) Restore(ctx context.Context) State {
	m.storeMu.Lock()

	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st != StateUnknown {
		m.storeMu.Unlock()
		m.markReady()
		return st
	}

	token, ok, err := m.store.Get(ctx)
	if err != nil {
		m.logger.Warn("session restore: token read failed", "err", err)
		ok = false
	}

	var sess *Session
	if ok {
		s, decodeErr := m.build(token)
		if decodeErr != nil {
			m.logger.Info("session restore: discarding stored token",
				"reason", decodeErr, "fingerprint", cryptox.FingerprintToken(token))
			if err := m.store.Delete(ctx); err != nil {
				m.logger.Warn("session restore: stale token delete failed", "err", err)
			}
		} else {
			sess = &s
		}
	}

	m.mu.Lock()
	next := m.setLocked(sess)
	m.mu.Unlock()
	m.storeMu.Unlock()

	m.markReady()
	m.notify(next)
	m.logger.Debug("session restored", "state", next.String())
	return next
}

// Login validates token, persists it and makes it the current session. On
// any error the previous state is left untouched.
func (m *Manager) Login(ctx context.Context, token string) (Session, error) {
	sess, err := m.build(token)
	if err != nil {
		return Session{}, err
	}

	m.storeMu.Lock()
	if err := m.store.Set(ctx, token); err != nil {
		m.storeMu.Unlock()
		return Session{}, fmt.Errorf("session: persist token: %w", err)
	}

	m.mu.Lock()
	next := m.setLocked(&sess)
	m.mu.Unlock()
	m.storeMu.Unlock()

	m.markReady()
	m.notify(next)
	m.logger.Info("session started", "user_id", sess.UserID, "username", sess.Username)
	return sess, nil
}

// Logout clears the session and deletes the stored token. The in-memory
// session is cleared first and a storage failure is only logged, so logout
// always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	m.storeMu.Lock()
	m.mu.Lock()
	changed := m.state != StateUnauthenticated
	next := m.setLocked(nil)
	m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		m.logger.Warn("logout: token delete failed", "err", err)
	}
	m.storeMu.Unlock()

	m.markReady()
	if changed {
		m.notify(next)
		m.logger.Info("session ended")
	}
}

// OnSessionExpired drops the in-memory session after the API rejected its
// token. The store is not touched; whoever saw the rejection owns that. It
// reports whether a session was actually dropped. Callers that know which
// token was rejected should use Expire instead.
func (m *Manager) OnSessionExpired() bool {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return false
	}
	next := m.setLocked(nil)
	m.mu.Unlock()

	m.notify(next)
	m.logger.Info("session expired")
	return true
}

// Expire ends the session only if it still holds token, deleting the stored
// copy with it. When memory holds nothing, a stored copy of token is still
// deleted. A session or stored token for any other token is left alone. It
// reports whether anything was removed; only then should the caller announce
// eventx.EventAuthenticationExpired, and the manager will not apply that
// event a second time.
func (m *Manager) Expire(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	m.storeMu.Lock()
	m.mu.Lock()
	live := m.current != nil && m.current.Token == token
	var next State
	if live {
		next = m.setLocked(nil)
	}
	m.mu.Unlock()

	removed := live
	if live {
		if err := m.store.Delete(ctx); err != nil {
			m.logger.Warn("rejected token delete failed", "err", err)
		}
	} else if stored, ok, err := m.store.Get(ctx); err == nil && ok && stored == token {
		if err := m.store.Delete(ctx); err != nil {
			m.logger.Warn("rejected token delete failed", "err", err)
		}
		removed = true
	}

	if removed {
		m.mu.Lock()
		m.expiryHandled = true
		m.mu.Unlock()
	}
	m.storeMu.Unlock()

	if live {
		m.notify(next)
		m.logger.Info("session expired", "fingerprint", cryptox.FingerprintToken(token))
	}
	return removed
}

// onExpiredEvent consumes the event Expire already acted on, so a Login
// that landed in between survives it.
func (m *Manager) onExpiredEvent(eventx.Event) {
	m.mu.Lock()
	if m.expiryHandled {
		m.expiryHandled = false
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.OnSessionExpired()
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a usable session is held.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Session()
	return ok
}

// Session returns the current session. A session whose token has crossed
// its expiry window is dropped and its token deleted before returning.
func (m *Manager) Session() (Session, bool) {
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()

	if cur == nil {
		return Session{}, false
	}
	if m.now().Before(cur.ExpiresAt.Add(-m.grace)) {
		return *cur, true
	}

	m.expireLocally(cur.Token)
	return Session{}, false
}

// Token returns the bearer token of the current session or "".
func (m *Manager) Token() string {
	s, ok := m.Session()
	if !ok {
		return ""
	}
	return s.Token
}

// Ready is closed once the manager has left StateUnknown.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Wait blocks until Ready is closed or ctx is done.
func (m *Manager) Wait(ctx context.Context) (State, error) {
	select {
	case <-m.ready:
		return m.State(), nil
	case <-ctx.Done():
		return StateUnknown, ctx.Err()
	}
}

// Watch calls fn with the new state after every transition. The returned
// function stops the notifications and may be called more than once.
func (m *Manager) Watch(fn func(State)) (stop func()) {
	m.watchMu.Lock()
	m.watchID++
	id := m.watchID
	m.watchers[id] = fn
	m.watchMu.Unlock()

	return func() {
		m.watchMu.Lock()
		delete(m.watchers, id)
		m.watchMu.Unlock()
	}
}

// expireLocally handles a token that ran out while held in memory.
func (m *Manager) expireLocally(token string) {
	m.storeMu.Lock()
	m.mu.Lock()
	if m.current == nil || m.current.Token != token {
		m.mu.Unlock()
		m.storeMu.Unlock()
		return
	}
	next := m.setLocked(nil)
	m.mu.Unlock()

	// No caller context here; the delete is local and quick.
	if err := m.store.Delete(context.Background()); err != nil {
		m.logger.Warn("expired token delete failed", "err", err)
	}
	m.storeMu.Unlock()
	m.notify(next)
	m.logger.Info("session expired locally", "fingerprint", cryptox.FingerprintToken(token))
}

// build decodes token into a Session without touching any state.
func (m *Manager) build(token string) (Session, error) {
	claims, ok := jwtx.Decode(token)
	if !ok {
		return Session{}, ErrDecode
	}
	if claims.ExpiredAt(m.now(), m.grace) {
		return Session{}, ErrTokenExpired
	}

	exp, _ := claims.Expiry()
	id, _ := claims.UserID()
	return Session{
		Token:     token,
		UserID:    id,
		Username:  claims.Username(),
		ExpiresAt: exp,
	}, nil
}

// setLocked installs sess (nil for signed out). m.mu must be held.
func (m *Manager) setLocked(sess *Session) State {
	m.current = sess
	if sess != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	return m.state
}

func (m *Manager) markReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

func (m *Manager) notify(st State) {
	m.watchMu.Lock()
	fns := make([]func(State), 0, len(m.watchers))
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	m.watchMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
