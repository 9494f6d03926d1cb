package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// State is the manager's position in its lifecycle. It starts at
// StateUnknown, leaves it exactly once via Init, and cycles between
// the other two states for the rest of the process.
type State string

const (
	StateUnknown         State = "unknown"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

const (
	loginPath   = "auth/login"
	logoutPath  = "auth/logout"
	refreshPath = "auth/refresh"
)

// User-facing messages. Transport failures all collapse into the generic
// retry message; only structured backend errors surface their own text.
const (
	MsgLoginFailed        = "Login failed"
	MsgRetry              = "Unable to reach the server. Please try again."
	MsgUnexpectedResponse = "Unexpected response from server."
	MsgMissingCredentials = "Email and password are required."
)

// Listener is notified after every state flip.
type Listener func(State)

// Manager is the single source of truth for who is logged in. The persisted
// store is written strictly before the in-memory state flips, on both
// sign-in and sign-out, so a concurrent reader sees either the fully-old or
// fully-new state. Concurrent sign-in attempts are not serialized; the last
// response to resolve wins.
type Manager struct {
	client *httpclient.Client
	store  storage.Store
	logger zerolog.Logger

	mu        sync.RWMutex
	state     State
	current   Session
	listeners []Listener

	refreshGroup singleflight.Group
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager in StateUnknown. Call Init to read the
// persisted session and leave it.
func NewManager(client *httpclient.Client, store storage.Store, options ...ManagerOption) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[NewManager] http client is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}

	manager := &Manager{
		client: client,
		store:  store,
		logger: zerolog.Nop(),
		state:  StateUnknown,
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Init performs the one-time storage read that moves the manager out of
// StateUnknown. A session record without a token is treated as logged-out.
// Calling Init again after the first transition is a no-op.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.RLock()
	initialized := m.state != StateUnknown
	m.mu.RUnlock()
	if initialized {
		return nil
	}

	data, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.logger.Warn().Err(err).Msg("failed to read persisted session")
		}
		m.transitionFromUnknown(Session{}, StateUnauthenticated)
		return nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Valid() {
		m.transitionFromUnknown(Session{}, StateUnauthenticated)
		return nil
	}

	m.transitionFromUnknown(sess, StateAuthenticated)
	return nil
}

// transitionFromUnknown applies the initial state only if nothing else,
// such as a sign-in racing ahead of Init, already left StateUnknown.
func (m *Manager) transitionFromUnknown(sess Session, next State) {
	m.mu.Lock()
	if m.state != StateUnknown {
		m.mu.Unlock()
		return
	}
	m.state = next
	m.current = sess
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// SignInResult carries the outcome of a sign-in attempt for display.
// FieldErrors holds per-field validation messages when the backend
// reported them.
type SignInResult struct {
	OK          bool
	Message     string
	FieldErrors map[string]string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userRecord struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
}

type loginPayload struct {
	User         userRecord `json:"user"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
}

// SignIn validates the credentials locally, calls the login endpoint, and
// on success persists the session before flipping the in-memory state.
// Empty credentials fail fast without any network call. Errors never
// propagate to the caller as exceptions; the result carries a displayable
// message instead.
func (m *Manager) SignIn(ctx context.Context, email, password string) SignInResult {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		fields := map[string]string{}
		if email == "" {
			fields["email"] = "Email is required"
		}
		if password == "" {
			fields["password"] = "Password is required"
		}
		return SignInResult{Message: MsgMissingCredentials, FieldErrors: fields}
	}

	resp, err := m.client.Post(ctx, loginPath, loginRequest{Email: email, Password: password}, &httpclient.RequestOptions{
		AllowErrorStatus: true,
		SkipAuth:         true,
	})
	if err != nil {
		return m.signInFailure(err)
	}

	envelope := resp.Envelope
	if !envelope.Success {
		message := envelope.ErrorMessage()
		if message == "" {
			message = MsgLoginFailed
		}
		return SignInResult{Message: message, FieldErrors: envelope.FieldErrors()}
	}

	var payload loginPayload
	if err := envelope.DecodeData(&payload); err != nil || payload.Token == "" {
		m.logger.Warn().Err(err).Msg("login succeeded with unusable payload")
		return SignInResult{Message: MsgUnexpectedResponse}
	}

	sess := Session{
		UserID:       payload.User.ID.String(),
		DisplayName:  payload.User.Name,
		Email:        payload.User.Email,
		Role:         payload.User.Role,
		AuthToken:    payload.Token,
		RefreshToken: payload.RefreshToken,
	}

	if err := m.persist(ctx, sess); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist session")
		return SignInResult{Message: MsgRetry}
	}

	m.flip(sess, StateAuthenticated)
	return SignInResult{OK: true}
}

func (m *Manager) signInFailure(err error) SignInResult {
	reqErr, ok := httpclient.AsRequestError(err)
	if ok && (reqErr.IsTimeout() || reqErr.IsNetwork()) {
		return SignInResult{Message: MsgRetry}
	}
	m.logger.Warn().Err(err).Msg("sign-in failed")
	return SignInResult{Message: MsgUnexpectedResponse}
}

// SignOut clears the persisted session, then memory, unconditionally. It
// never fails: by the time storage errors could surface, the local state
// has already moved on, so they are only logged. Calling it while already
// signed out is a no-op.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.RLock()
	wasAuthenticated := m.state == StateAuthenticated
	m.mu.RUnlock()

	if wasAuthenticated {
		// Best-effort server-side invalidation; local sign-out proceeds
		// regardless of the outcome.
		if _, err := m.client.Post(ctx, logoutPath, nil, nil); err != nil {
			m.logger.Debug().Err(err).Msg("logout request failed")
		}
	}

	if err := m.store.Delete(ctx, StorageKey); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}

	if wasAuthenticated {
		m.flip(Session{}, StateUnauthenticated)
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshPayload struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges the refresh token for a new auth token. Concurrent
// calls, such as several screens reacting to the same expiry, are collapsed
// into a single request.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		m.mu.RLock()
		current := m.current
		state := m.state
		m.mu.RUnlock()

		if state != StateAuthenticated {
			return nil, ErrNotAuthenticated
		}
		if current.RefreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		resp, err := m.client.Post(ctx, refreshPath, refreshRequest{RefreshToken: current.RefreshToken}, nil)
		if err != nil {
			return nil, errors.Wrap(err, "[Manager.Refresh] refresh request")
		}

		var payload refreshPayload
		if err := resp.Envelope.DecodeData(&payload); err != nil || payload.Token == "" {
			return nil, ErrUnexpectedPayload
		}

		next := current
		next.AuthToken = payload.Token
		if payload.RefreshToken != "" {
			next.RefreshToken = payload.RefreshToken
		}

		if err := m.persist(ctx, next); err != nil {
			return nil, errors.Wrap(err, "[Manager.Refresh] persist")
		}
		m.flip(next, StateAuthenticated)
		return nil, nil
	})
	return err
}

// Invalidate flips the manager to StateUnauthenticated in response to an
// authentication-failure signal (token rejected mid-session). It only flips
// state; any redirect is the navigation layer's reaction to the flag.
func (m *Manager) Invalidate() {
	m.mu.RLock()
	authenticated := m.state == StateAuthenticated
	m.mu.RUnlock()
	if !authenticated {
		return
	}

	if err := m.store.Delete(context.Background(), StorageKey); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear persisted session on invalidation")
	}
	m.flip(Session{}, StateUnauthenticated)
}

// IsAuthenticated reports whether the current in-memory session carries a
// non-empty auth token.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated && m.current.Valid()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the in-memory session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token implements httpclient.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AuthToken
}

// OnChange registers a listener invoked after every state flip, in
// registration order.
func (m *Manager) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) persist(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "[Manager.persist] json.Marshal")
	}
	if err := m.store.Set(ctx, StorageKey, data); err != nil {
		return errors.Wrap(err, "[Manager.persist] store.Set")
	}
	return nil
}

func (m *Manager) flip(sess Session, next State) {
	m.mu.Lock()
	m.state = next
	m.current = sess
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
