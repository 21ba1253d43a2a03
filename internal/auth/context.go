// Package auth holds the process-wide session state machine: who is
// signed in, whether their email still needs verification, and whether
// the persisted session has been restored yet.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"wisata/internal/auth/models"
	"wisata/internal/platform/metrics"
	"wisata/internal/session"
)

// Notifier tells the upstream that a session ended. The call is made
// after local state is already cleared, so it receives the token
// explicitly.
type Notifier interface {
	Logout(ctx context.Context, token string) error
}

// Snapshot is a consistent read of the session state. User is a copy;
// mutating it does not touch the manager.
type Snapshot struct {
	Loading           bool
	Authenticated     bool
	User              *models.User
	NeedsVerification bool
}

// Manager owns the single authenticated session. All transitions are
// serialized under one mutex; reads go through Snapshot.
type Manager struct {
	store    session.Store
	notifier Notifier
	log      *slog.Logger
	metrics  *metrics.Metrics
	clock    func() time.Time

	mu                sync.RWMutex
	loading           bool
	user              *models.User
	token             string
	device            string
	needsVerification bool
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger.
func WithManagerLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// WithNotifier sets the upstream logout notifier.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

// WithManagerMetrics sets the metrics sink.
func WithManagerMetrics(mx *metrics.Metrics) ManagerOption {
	return func(m *Manager) { m.metrics = mx }
}

// WithClock overrides the time source (for testing).
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) { m.clock = clock }
}

// NewManager creates a manager in the loading state. Call Load to
// restore the persisted session and leave loading.
func NewManager(store session.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   store,
		log:     slog.Default(),
		clock:   time.Now,
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load restores the persisted session, if any. Absence, corruption and
// an expired token all resolve to the logged-out state; loading is left
// behind in every case. Load never fails: a session that cannot be
// restored is simply not a session.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	rec, err := m.store.Read()
	if err != nil {
		m.resetLocked()
		return
	}

	if tokenExpired(rec.Token, m.clock()) {
		m.log.Info("persisted session expired, clearing")
		if cerr := m.store.Clear(); cerr != nil {
			m.log.Warn("clearing expired session failed", "error", cerr)
		}
		m.resetLocked()
		return
	}

	var user models.User
	if err := json.Unmarshal(rec.User, &user); err != nil || user.ID == 0 {
		m.log.Warn("persisted user record undecodable, clearing", "error", err)
		if cerr := m.store.Clear(); cerr != nil {
			m.log.Warn("clearing bad session failed", "error", cerr)
		}
		m.resetLocked()
		return
	}

	m.user = &user
	m.token = rec.Token
	m.device = rec.Device
	m.needsVerification = !rec.EmailVerified && !user.VerifiedEmail()
	m.log.Info("session restored", "user_id", user.ID, "role", user.Role)
}

func (m *Manager) resetLocked() {
	m.user = nil
	m.token = ""
	m.device = ""
	m.needsVerification = false
}

// Login installs an authenticated session. The store write happens
// before memory is touched: if persistence fails, the in-memory state
// stays logged out and the error surfaces to the caller. verified comes
// from the caller, not the user record, because the upstream issues
// tokens to unverified accounts too.
func (m *Manager) Login(user models.User, token string, verified bool, device string) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if device == "" {
		device = m.device
	}
	if err := m.store.Write(session.Record{
		Token:         token,
		User:          encoded,
		EmailVerified: verified,
		Device:        device,
	}); err != nil {
		return err
	}

	u := user
	m.user = &u
	m.token = token
	m.device = device
	m.needsVerification = !verified
	m.loading = false

	if m.metrics != nil {
		m.metrics.SessionsOpened.Inc()
	}
	m.log.Info("session opened", "user_id", user.ID, "role", user.Role, "verified", verified)
	return nil
}

// Logout clears the session synchronously and notifies the upstream in
// the background. The local state is authoritative: a failed or slow
// upstream call never keeps the session alive.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	wasAuthenticated := m.user != nil
	m.resetLocked()
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn("clearing session store failed", "error", err)
	}

	if !wasAuthenticated {
		return
	}
	if m.metrics != nil {
		m.metrics.SessionsClosed.Inc()
	}
	m.log.Info("session closed")

	if m.notifier == nil || token == "" {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := m.notifier.Logout(detached, token); err != nil {
			m.log.Warn("upstream logout failed", "error", err)
		}
	}()
}

// VerifyEmail marks the current session's account as verified and
// persists the stamped record. Without an authenticated session it is a
// no-op.
func (m *Manager) VerifyEmail() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return
	}

	stamp := m.clock().UTC().Format(time.RFC3339)
	m.user.EmailVerifiedAt = &stamp
	m.user.EmailVerified = true
	m.needsVerification = false

	encoded, err := json.Marshal(m.user)
	if err != nil {
		m.log.Warn("encoding verified user failed", "error", err)
		return
	}
	if err := m.store.Write(session.Record{
		Token:         m.token,
		User:          encoded,
		EmailVerified: true,
		Device:        m.device,
	}); err != nil {
		m.log.Warn("persisting verified session failed", "error", err)
	}

	if m.metrics != nil {
		m.metrics.EmailVerifications.Inc()
	}
	m.log.Info("email verified", "user_id", m.user.ID)
}

// Snapshot returns a consistent view of the session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Loading:           m.loading,
		Authenticated:     m.user != nil,
		NeedsVerification: m.needsVerification,
	}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// Token returns the current bearer token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Device returns the recorded device label for the session.
func (m *Manager) Device() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.device
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// NeedsVerification reports whether the session's email is unverified.
func (m *Manager) NeedsVerification() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.needsVerification
}
