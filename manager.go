package authgate

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskpilot/authgate/internal/state"
	"github.com/taskpilot/authgate/issuer"
	"github.com/taskpilot/authgate/token"
)

// Manager is the client-side session authority. It owns the credential
// store, the reactive session state, and every transition between signed-in
// and signed-out. All methods are safe for concurrent use.
//
// Store writes and state publications for one transition happen under a
// single lock, so no observer sees a token without its profile or a profile
// without its token.
type Manager struct {
	cfg     Config
	store   Store
	issuer  *issuer.Client
	state   *state.Slot
	nav     Navigator
	audit   *auditDispatcher
	metrics *Metrics

	// mu serializes session transitions. generation advances on every
	// sign-out so a login racing a logout can detect it lost.
	mu         sync.Mutex
	generation uint64
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

// Login exchanges credentials for a token, persists both session slots, and
// publishes the signed-in profile. A logout that lands while the issuer
// round trip is in flight wins: the late success is discarded and
// ErrLoginSuperseded returned, leaving store and state untouched.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if m == nil {
		return nil, ErrManagerNotReady
	}

	attemptID := uuid.NewString()
	start := time.Now()

	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()

	resp, err := m.issuer.Login(ctx, issuer.LoginRequest{
		Username: creds.Username,
		Password: creds.Password,
		OTP:      creds.OTP,
	})
	if m.metrics.LatencyEnabled() {
		m.metrics.Observe(MetricLoginLatency, time.Since(start))
	}
	if err != nil {
		m.metricInc(MetricLoginFailure)
		m.countIssuerFailure(err)
		m.emitAudit(ctx, auditEventLoginFailure, false, 0, attemptID, err, func() map[string]string {
			return map[string]string{"username": creds.Username}
		})
		return nil, err
	}

	profile := UserProfile{
		ID:       resp.User.ID,
		Username: resp.User.Username,
		RoleID:   resp.User.RoleID,
	}
	snapshot, err := json.Marshal(profile)
	if err != nil {
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, auditEventLoginFailure, false, profile.ID, attemptID, err, nil)
		return nil, err
	}

	m.mu.Lock()
	if m.generation != gen {
		m.mu.Unlock()
		m.metricInc(MetricLoginSuperseded)
		m.emitAudit(ctx, auditEventLoginSuperseded, false, profile.ID, attemptID, ErrLoginSuperseded, nil)
		return nil, ErrLoginSuperseded
	}
	m.store.Set(resp.Token, snapshot)
	m.state.Publish(&profile)
	m.mu.Unlock()

	m.metricInc(MetricLoginSuccess)
	m.emitAudit(ctx, auditEventLoginSuccess, true, profile.ID, attemptID, nil, func() map[string]string {
		return map[string]string{"username": profile.Username}
	})
	return &LoginResult{Token: resp.Token, Message: resp.Message, User: profile}, nil
}

// Register creates an account at the issuer. It never touches the session:
// the new account signs in separately.
func (m *Manager) Register(ctx context.Context, reg Registration) (*RegisterResult, error) {
	if m == nil {
		return nil, ErrManagerNotReady
	}

	attemptID := uuid.NewString()
	resp, err := m.issuer.Register(ctx, issuer.RegisterRequest{
		Username: reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
	})
	if err != nil {
		m.metricInc(MetricRegisterFailure)
		m.countIssuerFailure(err)
		m.emitAudit(ctx, auditEventRegisterFailure, false, 0, attemptID, err, func() map[string]string {
			return map[string]string{"username": reg.Username}
		})
		return nil, err
	}

	m.metricInc(MetricRegisterSuccess)
	m.emitAudit(ctx, auditEventRegisterSuccess, true, 0, attemptID, nil, func() map[string]string {
		return map[string]string{"username": reg.Username}
	})
	return &RegisterResult{Message: resp.Message}, nil
}

// Logout clears both stored slots, publishes the signed-out state, and
// navigates to the sign-in route. Logging out while signed out is a no-op
// transition that still lands on the sign-in route.
func (m *Manager) Logout(ctx context.Context) {
	if m == nil {
		return
	}
	m.signOut(ctx, auditEventLogout, MetricLogout)
}

// Deauthorize is the forced variant of Logout, invoked when the issuer
// rejects the session credential mid-flight. Semantics are identical; only
// the audit trail differs.
func (m *Manager) Deauthorize(ctx context.Context) {
	if m == nil {
		return
	}
	m.signOut(ctx, auditEventForcedLogout, MetricForcedLogout)
}

func (m *Manager) signOut(ctx context.Context, eventType string, metric MetricID) {
	m.mu.Lock()
	userID := 0
	if cur := m.state.Current(); cur != nil {
		userID = cur.ID
	}
	m.generation++
	m.store.Clear()
	m.state.Publish(nil)
	m.mu.Unlock()

	m.metricInc(metric)
	m.emitAudit(ctx, eventType, true, userID, "", nil, nil)

	if m.nav != nil {
		m.nav.NavigateTo(m.cfg.Routes.SignIn)
	}
}

// IsAuthenticated reports whether a stored credential exists and its exp
// claim has not passed. Malformed credentials count as expired. No network
// traffic, no store mutation.
func (m *Manager) IsAuthenticated() bool {
	if m == nil {
		return false
	}
	tok, ok := m.store.Token()
	if !ok {
		return false
	}
	if token.IsExpired(tok) {
		m.metricInc(MetricTokenExpired)
		return false
	}
	return true
}

// Token returns the stored credential, if any. It does not check expiry;
// expired credentials are still attached to requests and rejected by the
// issuer, which is what drives Deauthorize.
func (m *Manager) Token() (string, bool) {
	if m == nil {
		return "", false
	}
	return m.store.Token()
}

// CurrentUser returns the profile of the signed-in user, or nil.
func (m *Manager) CurrentUser() *UserProfile {
	if m == nil {
		return nil
	}
	return m.state.Current()
}

// Subscribe registers an observer of session transitions. Each publication
// delivers the new profile, or nil on sign-out. cancel unregisters.
func (m *Manager) Subscribe(buffer int) (<-chan *UserProfile, func()) {
	return m.state.Subscribe(buffer)
}

// SubscribeAuthenticated is the boolean view of Subscribe: every session
// publication emits whether the session is authenticated after it, combining
// the published state with the credential expiry check.
func (m *Manager) SubscribeAuthenticated(buffer int) (<-chan bool, func()) {
	updates, cancelUpdates := m.Subscribe(buffer)
	if buffer <= 0 {
		buffer = 1
	}
	out := make(chan bool, buffer)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case p := <-updates:
				authed := p != nil && m.IsAuthenticated()
				select {
				case out <- authed:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelUpdates()
			close(done)
		})
	}
	return out, cancel
}

// HasRole reports whether the current session is authenticated and carries
// the given role. Role checks on an expired session are false.
func (m *Manager) HasRole(roleID int) bool {
	if !m.IsAuthenticated() {
		return false
	}
	cur := m.state.Current()
	return cur != nil && cur.RoleID == roleID
}

// IsAdmin reports an authenticated session with the admin role.
func (m *Manager) IsAdmin() bool { return m.HasRole(RoleAdmin) }

// IsUser reports an authenticated session with the regular user role.
func (m *Manager) IsUser() bool { return m.HasRole(RoleUser) }

// FetchProfile retrieves the account profile from the issuer using the
// stored credential and returns the payload opaquely, without touching
// session state.
func (m *Manager) FetchProfile(ctx context.Context) (json.RawMessage, error) {
	if m == nil {
		return nil, ErrManagerNotReady
	}
	tok, ok := m.store.Token()
	if !ok {
		return nil, ErrNoSession
	}
	raw, err := m.issuer.Profile(ctx, tok)
	if err != nil {
		m.countIssuerFailure(err)
		if errors.Is(err, ErrUnauthorized) {
			m.Deauthorize(ctx)
		}
		return nil, err
	}
	return raw, nil
}

// RefreshProfile re-reads the persisted profile snapshot and republishes it,
// picking up a profile change written by another party without
// re-authenticating. No network traffic. A snapshot that no longer parses
// clears the session defensively and returns ErrCorruptPersistedState.
func (m *Manager) RefreshProfile(ctx context.Context) (*UserProfile, error) {
	if m == nil {
		return nil, ErrManagerNotReady
	}

	m.mu.Lock()
	if _, ok := m.store.Token(); !ok {
		m.mu.Unlock()
		return nil, ErrNoSession
	}
	snapshot, ok := m.store.Profile()
	var profile UserProfile
	if !ok || json.Unmarshal(snapshot, &profile) != nil {
		m.generation++
		m.store.Clear()
		m.state.Publish(nil)
		m.mu.Unlock()
		m.metricInc(MetricStateCorrupt)
		m.emitAudit(ctx, auditEventStateCorrupt, false, 0, "", ErrCorruptPersistedState, nil)
		return nil, ErrCorruptPersistedState
	}
	m.state.Publish(&profile)
	m.mu.Unlock()

	m.metricInc(MetricProfileRefreshed)
	m.emitAudit(ctx, auditEventProfileRefreshed, true, profile.ID, "", nil, nil)
	return &profile, nil
}

// UpdateProfile replaces the persisted profile snapshot and publishes the
// new profile, keeping the stored token. Both slots are rewritten together.
func (m *Manager) UpdateProfile(ctx context.Context, profile *UserProfile) error {
	if m == nil {
		return ErrManagerNotReady
	}
	if profile == nil {
		return errors.New("nil profile")
	}
	snapshot, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	m.mu.Lock()
	tok, ok := m.store.Token()
	if !ok {
		m.mu.Unlock()
		return ErrNoSession
	}
	m.store.Set(tok, snapshot)
	m.state.Publish(profile)
	m.mu.Unlock()

	m.metricInc(MetricProfileUpdated)
	m.emitAudit(ctx, auditEventProfileUpdated, true, profile.ID, "", nil, nil)
	return nil
}

// ObserveRequestAuthorized records that an outgoing request carried the
// session credential. Called by the transport authorizer.
func (m *Manager) ObserveRequestAuthorized(ctx context.Context) {
	m.metricInc(MetricRequestAuthorized)
}

// ObserveStatus classifies a response status seen by the request middleware.
// A 401 forces a deauthorization; every other failure class is counted and
// left to the caller.
func (m *Manager) ObserveStatus(ctx context.Context, status int) {
	if m == nil {
		return
	}
	switch {
	case status == 401:
		m.metricInc(MetricUnauthorizedResponse)
		m.Deauthorize(ctx)
	case status == 403:
		m.metricInc(MetricForbiddenResponse)
	case status == 400:
		m.metricInc(MetricBadRequestResponse)
	case status >= 500:
		m.metricInc(MetricServerFaultResponse)
	case status == 0:
		m.metricInc(MetricNetworkFailure)
	}
}

func (m *Manager) countIssuerFailure(err error) {
	switch {
	case errors.Is(err, ErrNetworkUnreachable):
		m.metricInc(MetricNetworkFailure)
	case errors.Is(err, ErrUnauthorized):
		m.metricInc(MetricUnauthorizedResponse)
	case errors.Is(err, ErrForbidden):
		m.metricInc(MetricForbiddenResponse)
	case errors.Is(err, ErrBadRequest):
		m.metricInc(MetricBadRequestResponse)
	case errors.Is(err, ErrServerFault):
		m.metricInc(MetricServerFaultResponse)
	}
}

// rehydrate loads a persisted session at construction time. A stored
// profile that no longer parses clears both slots; an expired token keeps
// the profile visible, matching the stored snapshot, while authentication
// queries report false until the next sign-in.
func (m *Manager) rehydrate(ctx context.Context) {
	if _, ok := m.store.Token(); !ok {
		// A profile without its token is half a session; drop it.
		if _, orphaned := m.store.Profile(); orphaned {
			m.store.Clear()
		}
		return
	}

	snapshot, ok := m.store.Profile()
	if !ok {
		m.store.Clear()
		m.metricInc(MetricStateCorrupt)
		m.emitAudit(ctx, auditEventStateCorrupt, false, 0, "", ErrCorruptPersistedState, nil)
		return
	}

	var profile UserProfile
	if err := json.Unmarshal(snapshot, &profile); err != nil {
		m.store.Clear()
		m.metricInc(MetricStateCorrupt)
		m.emitAudit(ctx, auditEventStateCorrupt, false, 0, "", ErrCorruptPersistedState, nil)
		log.Print("authgate: cleared corrupt persisted session state")
		return
	}

	m.state.Publish(&profile)
	m.metricInc(MetricSessionRehydrated)
	m.emitAudit(ctx, auditEventSessionRehydrated, true, profile.ID, "", nil, nil)
}

// MetricsSnapshot returns a copy of all counters and histograms.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return m.metrics.Snapshot()
}

// AuditDropped reports audit events discarded because the dispatch buffer
// was full.
func (m *Manager) AuditDropped() uint64 {
	if m == nil {
		return 0
	}
	return m.audit.Dropped()
}

// Close flushes the audit dispatcher. The Manager must not be used after
// Close.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.audit.Close()
}
