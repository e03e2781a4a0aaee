package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/medchain/portal/internal/domain"
	"github.com/medchain/portal/internal/token"
	"github.com/medchain/portal/internal/tokenstore"
	apperrors "github.com/medchain/portal/pkg/util"
)

// Verifier is the slice of the upstream client the manager depends on.
type Verifier interface {
	Login(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, credential string) (*domain.UserIdentity, error)
	Signup(ctx context.Context, data domain.SignupData) (*domain.UserIdentity, error)
}

// Manager owns the Session for one portal client. It is the only component
// that mutates the session; everything else reads snapshots. Verification
// calls run outside the lock, so completions carry an attempt sequence number
// and a completion older than the last applied one is discarded — the call
// that completes last in sequence order wins, not the call that started last.
type Manager struct {
	clientID string
	store    tokenstore.Store
	upstream Verifier
	logger   *zap.Logger

	mu              sync.Mutex
	session         domain.Session
	attempts        uint64
	applied         uint64
	booted          bool
	profileComplete bool
}

// NewManager builds a manager for one client. The session starts in Loading
// until Bootstrap resolves it.
func NewManager(clientID string, store tokenstore.Store, upstream Verifier, logger *zap.Logger) *Manager {
	return &Manager{
		clientID: clientID,
		store:    store,
		upstream: upstream,
		logger:   logger.With(zap.String("client_id", clientID)),
		session:  domain.Session{Status: domain.StatusLoading},
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Credential returns the stored bearer token for attaching to upstream calls.
func (m *Manager) Credential(ctx context.Context) (string, bool) {
	cred, ok, err := m.store.Load(ctx, m.clientID)
	if err != nil {
		m.logger.Warn("credential load failed", zap.Error(err))
		return "", false
	}
	return cred, ok
}

// Bootstrap resolves the initial session state from whatever credential the
// store holds. It runs once per manager; later calls are no-ops. Unlike
// RefreshUser, a failure here is terminal: the portal must not present a user
// as authenticated on stale or bad data, so the credential is dropped.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	if m.booted {
		m.mu.Unlock()
		return
	}
	m.booted = true

	cred, ok, err := m.store.Load(ctx, m.clientID)
	if err != nil || !ok {
		if err != nil {
			m.logger.Warn("token store unavailable at boot", zap.Error(err))
		}
		m.session = domain.Session{Status: domain.StatusUnauthenticated}
		m.mu.Unlock()
		return
	}

	// An expired credential never reaches the verifier.
	if token.IsExpired(cred) {
		m.session = domain.Session{Status: domain.StatusUnauthenticated}
		m.mu.Unlock()
		if err := m.store.Clear(ctx, m.clientID); err != nil {
			m.logger.Warn("failed to clear expired credential", zap.Error(err))
		}
		return
	}

	seq := m.beginAttemptLocked(true)
	m.mu.Unlock()

	identity, err := m.upstream.Verify(ctx, cred)
	if err != nil {
		m.logger.Info("token verification failed at boot", zap.Error(err))
		if clearErr := m.store.Clear(ctx, m.clientID); clearErr != nil {
			m.logger.Warn("failed to clear rejected credential", zap.Error(clearErr))
		}
		m.completeAttempt(seq, domain.Session{Status: domain.StatusUnauthenticated})
		return
	}
	m.completeAttempt(seq, domain.Session{User: identity, Status: domain.StatusAuthenticated})
}

// LoginUser obtains a credential, persists it, and re-verifies it to populate
// the authoritative identity. Login alone is not trusted: only the verify
// endpoint can supply the role.
func (m *Manager) LoginUser(ctx context.Context, email, password string) (*domain.UserIdentity, error) {
	m.mu.Lock()
	seq := m.beginAttemptLocked(true)
	m.mu.Unlock()

	cred, err := m.upstream.Login(ctx, email, password)
	if err != nil {
		m.completeAttempt(seq, errorSession(err))
		return nil, err
	}

	if err := m.store.Save(ctx, m.clientID, cred); err != nil {
		wrapped := apperrors.NewInternalError(err)
		m.completeAttempt(seq, errorSession(wrapped))
		return nil, wrapped
	}

	identity, err := m.upstream.Verify(ctx, cred)
	if err != nil {
		m.logger.Info("post-login verification failed", zap.Error(err))
		if clearErr := m.store.Clear(ctx, m.clientID); clearErr != nil {
			m.logger.Warn("failed to clear unverified credential", zap.Error(clearErr))
		}
		authErr := apperrors.NewAuthError("Authentication failed")
		m.completeAttempt(seq, errorSession(authErr))
		return nil, authErr
	}

	m.completeAttempt(seq, domain.Session{User: identity, Status: domain.StatusAuthenticated})
	return identity, nil
}

// SignupUser registers a new account. It does not establish a session; the
// caller is expected to route to login afterward.
func (m *Manager) SignupUser(ctx context.Context, data domain.SignupData) (*domain.UserIdentity, error) {
	m.mu.Lock()
	prior := m.session
	prior.ErrorMessage = ""
	seq := m.beginAttemptLocked(true)
	m.mu.Unlock()

	identity, err := m.upstream.Signup(ctx, data)
	if err != nil {
		m.completeAttempt(seq, errorSession(err))
		return nil, err
	}
	m.completeAttempt(seq, prior)
	return identity, nil
}

// LogoutUser clears the stored credential and resets the session. It is
// synchronous and makes no remote call; any in-flight verification from
// before the logout is superseded and will be discarded on completion.
func (m *Manager) LogoutUser(ctx context.Context) {
	if err := m.store.Clear(ctx, m.clientID); err != nil {
		m.logger.Warn("failed to clear credential on logout", zap.Error(err))
	}
	m.mu.Lock()
	m.applied = m.attempts
	m.session = domain.Session{Status: domain.StatusUnauthenticated}
	m.profileComplete = false
	m.mu.Unlock()
}

// RefreshUser re-runs verification in the background. Failures are logged and
// swallowed so a transient outage never logs out an active user; only a
// locally-expired credential forces the session down, since that verdict is
// deterministic rather than transient.
func (m *Manager) RefreshUser(ctx context.Context) {
	cred, ok, err := m.store.Load(ctx, m.clientID)
	if err != nil {
		m.logger.Warn("refresh skipped, token store unavailable", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	if token.IsExpired(cred) {
		m.logger.Info("credential expired, dropping session")
		m.LogoutUser(ctx)
		return
	}

	m.mu.Lock()
	seq := m.beginAttemptLocked(false)
	m.mu.Unlock()

	identity, err := m.upstream.Verify(ctx, cred)
	if err != nil {
		m.logger.Warn("background refresh failed", zap.Error(err))
		return
	}
	m.completeAttempt(seq, domain.Session{User: identity, Status: domain.StatusAuthenticated})
}

// ProfileComplete reports whether onboarding has been confirmed this session.
func (m *Manager) ProfileComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profileComplete
}

// MarkProfileComplete records a confirmed profile so the gate never re-checks
// or re-redirects for the remainder of the session.
func (m *Manager) MarkProfileComplete() {
	m.mu.Lock()
	m.profileComplete = true
	m.mu.Unlock()
}

// beginAttemptLocked issues the next attempt sequence number. When visible is
// true the session enters Loading with any prior error cleared; background
// refreshes keep the current state on screen instead.
func (m *Manager) beginAttemptLocked(visible bool) uint64 {
	m.attempts++
	if visible {
		m.session = domain.Session{User: m.session.User, Status: domain.StatusLoading}
	}
	return m.attempts
}

// completeAttempt applies the outcome of an attempt unless a later attempt
// already completed.
func (m *Manager) completeAttempt(seq uint64, next domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq <= m.applied {
		m.logger.Debug("discarding stale verification result",
			zap.Uint64("seq", seq), zap.Uint64("applied", m.applied))
		return
	}
	m.applied = seq
	m.session = next
}

// errorSession maps a terminal attempt failure to the Error state with the
// user-facing message.
func errorSession(err error) domain.Session {
	return domain.Session{
		Status:       domain.StatusError,
		ErrorMessage: apperrors.ToDomainError(err).Message,
	}
}
