package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/session"
	"github.com/connecthub/connecthub-go/storage/storefakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginSuccessBody = `{"success":true,"data":{"user":{"id":1,"email":"test@example.com","name":"Test User"},"token":"abc123"}}`

// testFixture wires a manager against an httptest backend and a fake store,
// mirroring the production wiring: the manager is the client's token source
// and its auth-failure handler.
type testFixture struct {
	manager *session.Manager
	store   *storefakes.FakeStore
	client  *httpclient.Client
	server  *httptest.Server
}

func setupTestFixture(t *testing.T, handler http.Handler) *testFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := storefakes.NewFakeStore()

	var manager *session.Manager
	client, err := httpclient.New(server.URL,
		httpclient.WithTimeout(2*time.Second),
		httpclient.WithTokenSource(httpclient.TokenSourceFunc(func() string {
			if manager == nil {
				return ""
			}
			return manager.Token()
		})),
		httpclient.WithAuthFailureHandler(func() {
			if manager != nil {
				manager.Invalidate()
			}
		}),
	)
	require.NoError(t, err)

	manager, err = session.NewManager(client, store)
	require.NoError(t, err)

	return &testFixture{manager: manager, store: store, client: client, server: server}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func loginHandler(calls *atomic.Int32, status int, body string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		writeJSON(w, status, body)
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{}}`)
	})
	return mux
}

func (f *testFixture) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, f.manager.Init(context.Background()))
	result := f.manager.SignIn(context.Background(), "test@example.com", "password123")
	require.True(t, result.OK, "sign-in should succeed: %s", result.Message)
}

func TestSignIn_EmptyCredentialsSkipNetwork(t *testing.T) {
	var calls atomic.Int32
	fixture := setupTestFixture(t, loginHandler(&calls, http.StatusOK, loginSuccessBody))
	require.NoError(t, fixture.manager.Init(context.Background()))

	result := fixture.manager.SignIn(context.Background(), "", "password123")
	assert.False(t, result.OK)
	assert.Equal(t, session.MsgMissingCredentials, result.Message)
	assert.Contains(t, result.FieldErrors, "email")

	result = fixture.manager.SignIn(context.Background(), "test@example.com", "")
	assert.False(t, result.OK)
	assert.Contains(t, result.FieldErrors, "password")

	assert.Zero(t, calls.Load(), "no network request may be issued for empty credentials")
	assert.False(t, fixture.manager.IsAuthenticated())
}

func TestSignIn_SuccessPersistsBeforeAuthenticating(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	require.NoError(t, fixture.manager.Init(context.Background()))

	result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
	require.True(t, result.OK)

	assert.True(t, fixture.manager.IsAuthenticated())
	assert.Equal(t, session.StateAuthenticated, fixture.manager.State())

	current := fixture.manager.Current()
	assert.Equal(t, "test@example.com", current.Email)
	assert.Equal(t, "Test User", current.DisplayName)
	assert.Equal(t, "1", current.UserID)

	// The persisted record carries the token.
	raw := fixture.store.Value(session.StorageKey)
	require.NotNil(t, raw)
	var persisted session.Session
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, "abc123", persisted.AuthToken)
}

func TestSignIn_StructuredErrorShapes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "error object with message",
			status:  http.StatusUnauthorized,
			body:    `{"success":false,"error":{"message":"Invalid Email format"}}`,
			message: "Invalid Email format",
		},
		{
			name:    "errors as plain string",
			status:  http.StatusForbidden,
			body:    `{"success":false,"errors":"Account locked"}`,
			message: "Account locked",
		},
		{
			name:    "message fallback",
			status:  http.StatusBadRequest,
			body:    `{"success":false,"message":"Chapter inactive"}`,
			message: "Chapter inactive",
		},
		{
			name:    "no recognizable message",
			status:  http.StatusUnauthorized,
			body:    `{"success":false}`,
			message: session.MsgLoginFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t, loginHandler(nil, tc.status, tc.body))
			require.NoError(t, fixture.manager.Init(context.Background()))

			result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
			assert.False(t, result.OK)
			assert.Equal(t, tc.message, result.Message)
			assert.False(t, fixture.manager.IsAuthenticated())
			assert.False(t, fixture.store.Has(session.StorageKey))
		})
	}
}

func TestSignIn_FieldErrorsPreserved(t *testing.T) {
	body := `{"success":false,"message":"Validation failed","errors":{"email":"Invalid Email format","password":"Password is required"}}`
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusUnprocessableEntity, body))
	require.NoError(t, fixture.manager.Init(context.Background()))

	result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
	assert.False(t, result.OK)
	require.NotNil(t, result.FieldErrors)
	assert.Equal(t, "Invalid Email format", result.FieldErrors["email"])
	assert.Equal(t, "Password is required", result.FieldErrors["password"])
}

func TestSignIn_NetworkFailureGivesRetryMessage(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	require.NoError(t, fixture.manager.Init(context.Background()))
	fixture.server.Close()

	result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
	assert.False(t, result.OK)
	assert.Equal(t, session.MsgRetry, result.Message)
}

func TestSignIn_UnusablePayload(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, `{"success":true,"data":{"user":{"id":1}}}`))
	require.NoError(t, fixture.manager.Init(context.Background()))

	result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
	assert.False(t, result.OK)
	assert.Equal(t, session.MsgUnexpectedResponse, result.Message)
	assert.False(t, fixture.manager.IsAuthenticated(), "a session without a token is never logged-in")
}

func TestSignOut_ClearsStorageAndMemory(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	fixture.signIn(t)

	fixture.manager.SignOut(context.Background())
	assert.False(t, fixture.manager.IsAuthenticated())
	assert.Equal(t, session.StateUnauthenticated, fixture.manager.State())
	assert.False(t, fixture.store.Has(session.StorageKey))
}

func TestSignOut_IsIdempotent(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	fixture.signIn(t)

	fixture.manager.SignOut(context.Background())
	stateAfterFirst := fixture.manager.State()

	require.NotPanics(t, func() {
		fixture.manager.SignOut(context.Background())
	})
	assert.Equal(t, stateAfterFirst, fixture.manager.State())
	assert.False(t, fixture.manager.IsAuthenticated())
}

func TestSignOut_SwallowsStorageErrors(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	fixture.signIn(t)

	fixture.store.DeleteErr = assert.AnError
	require.NotPanics(t, func() {
		fixture.manager.SignOut(context.Background())
	})
	assert.False(t, fixture.manager.IsAuthenticated())
}

func TestInit_RestoresPersistedSession(t *testing.T) {
	fixture := setupTestFixture(t, http.NewServeMux())

	persisted, err := json.Marshal(session.Session{
		UserID:      "7",
		DisplayName: "Stored User",
		Email:       "stored@example.com",
		AuthToken:   "stored-token",
	})
	require.NoError(t, err)
	require.NoError(t, fixture.store.Set(context.Background(), session.StorageKey, persisted))

	require.NoError(t, fixture.manager.Init(context.Background()))
	assert.Equal(t, session.StateAuthenticated, fixture.manager.State())
	assert.True(t, fixture.manager.IsAuthenticated())
	assert.Equal(t, "stored@example.com", fixture.manager.Current().Email)
}

func TestInit_TokenlessRecordIsLoggedOut(t *testing.T) {
	fixture := setupTestFixture(t, http.NewServeMux())

	persisted, err := json.Marshal(session.Session{UserID: "7", Email: "stored@example.com"})
	require.NoError(t, err)
	require.NoError(t, fixture.store.Set(context.Background(), session.StorageKey, persisted))

	require.NoError(t, fixture.manager.Init(context.Background()))
	assert.Equal(t, session.StateUnauthenticated, fixture.manager.State())
	assert.False(t, fixture.manager.IsAuthenticated())
}

func TestInit_EmptyStoreAndRepeatCalls(t *testing.T) {
	fixture := setupTestFixture(t, http.NewServeMux())

	assert.Equal(t, session.StateUnknown, fixture.manager.State())
	require.NoError(t, fixture.manager.Init(context.Background()))
	assert.Equal(t, session.StateUnauthenticated, fixture.manager.State())

	// Second Init is a no-op.
	require.NoError(t, fixture.manager.Init(context.Background()))
	assert.Equal(t, session.StateUnauthenticated, fixture.manager.State())
}

func TestInvalidate_OnRejectedToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, loginSuccessBody)
	})
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"Token expired"}`)
	})

	fixture := setupTestFixture(t, mux)
	fixture.signIn(t)

	_, err := fixture.client.Get(context.Background(), "members", nil)
	require.Error(t, err)

	assert.False(t, fixture.manager.IsAuthenticated())
	assert.Equal(t, session.StateUnauthenticated, fixture.manager.State())
	assert.False(t, fixture.store.Has(session.StorageKey))
}

func TestRefresh_CollapsesConcurrentCalls(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"user":{"id":1,"email":"test@example.com","name":"Test User"},"token":"abc123","refresh_token":"refresh-1"}}`)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"token":"abc456","refresh_token":"refresh-2"}}`)
	})

	fixture := setupTestFixture(t, mux)
	fixture.signIn(t)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = fixture.manager.Refresh(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), refreshCalls.Load())
	current := fixture.manager.Current()
	assert.Equal(t, "abc456", current.AuthToken)
	assert.Equal(t, "refresh-2", current.RefreshToken)
}

func TestRefresh_WithoutRefreshToken(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))
	fixture.signIn(t)

	err := fixture.manager.Refresh(context.Background())
	require.ErrorIs(t, err, session.ErrNoRefreshToken)
}

func TestRefresh_WhenSignedOut(t *testing.T) {
	fixture := setupTestFixture(t, http.NewServeMux())
	require.NoError(t, fixture.manager.Init(context.Background()))

	err := fixture.manager.Refresh(context.Background())
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestOnChange_NotifiedAfterEveryFlip(t *testing.T) {
	fixture := setupTestFixture(t, loginHandler(nil, http.StatusOK, loginSuccessBody))

	var mu sync.Mutex
	var states []session.State
	fixture.manager.OnChange(func(s session.State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	require.NoError(t, fixture.manager.Init(context.Background()))
	result := fixture.manager.SignIn(context.Background(), "test@example.com", "password123")
	require.True(t, result.OK)
	fixture.manager.SignOut(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(states), 3)
	assert.Equal(t, session.StateUnauthenticated, states[0])
	assert.Equal(t, session.StateAuthenticated, states[1])
	assert.Equal(t, session.StateUnauthenticated, states[len(states)-1])
}

func TestSessionExpiresAt_NonJWTToken(t *testing.T) {
	sess := session.Session{AuthToken: "abc123"}
	assert.True(t, sess.ExpiresAt().IsZero())
}
