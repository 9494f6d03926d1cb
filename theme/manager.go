package theme

import (
	"context"
	"sync"
	"time"

	"github.com/connecthub/connecthub-go/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const persistTimeout = 5 * time.Second

// Manager owns the tri-state display preference. The preference defaults to
// ModeSystem on first run; the resolved active theme is always ModeLight or
// ModeDark. Until the initial asynchronous load completes, ActiveTheme
// resolves to ModeLight so first paint never waits on storage I/O.
type Manager struct {
	store  storage.Store
	scheme SchemeSource
	logger zerolog.Logger

	mu       sync.RWMutex
	mode     Mode
	resolved bool // initial load finished or an explicit SetMode happened
	explicit bool // a SetMode happened; a late Init must not clobber it
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSchemeSource injects the OS scheme reader.
func WithSchemeSource(src SchemeSource) ManagerOption {
	return func(m *Manager) {
		if src != nil {
			m.scheme = src
		}
	}
}

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager. Without a scheme source the OS scheme is
// assumed light.
func NewManager(store storage.Store, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[theme.NewManager] store is required")
	}

	manager := &Manager{
		store:  store,
		scheme: func() Mode { return ModeLight },
		logger: zerolog.Nop(),
		mode:   ModeSystem,
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Init reads the persisted preference. Run it in its own goroutine; the
// manager is fully usable before it completes. An explicit SetMode that
// raced ahead of the load wins over the stored value.
func (m *Manager) Init(ctx context.Context) error {
	data, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.logger.Warn().Err(err).Msg("failed to read persisted theme preference")
		}
		m.applyLoaded(ModeSystem)
		return nil
	}

	mode := Mode(data)
	if !mode.Valid() {
		mode = ModeSystem
	}
	m.applyLoaded(mode)
	return nil
}

func (m *Manager) applyLoaded(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.explicit {
		m.mode = mode
	}
	m.resolved = true
}

// SetMode updates the preference synchronously and persists it
// fire-and-forget. A failed persist only risks losing the preference on the
// next cold start, never an incorrect current-session render, so failures
// are logged and not surfaced.
func (m *Manager) SetMode(mode Mode) error {
	if !mode.Valid() {
		return errors.Errorf("[Manager.SetMode] invalid mode %q", mode)
	}

	m.mu.Lock()
	m.mode = mode
	m.resolved = true
	m.explicit = true
	m.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := m.store.Set(ctx, StorageKey, []byte(mode)); err != nil {
			m.logger.Warn().Err(err).Msg("failed to persist theme preference")
		}
	}()

	return nil
}

// Mode returns the stored preference.
func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// ActiveTheme resolves the preference to the concrete theme applied to
// rendering. It never returns ModeSystem.
func (m *Manager) ActiveTheme() Mode {
	m.mu.RLock()
	mode := m.mode
	resolved := m.resolved
	m.mu.RUnlock()

	if !resolved {
		return ModeLight
	}
	if mode == ModeSystem {
		if scheme := m.scheme(); scheme == ModeDark {
			return ModeDark
		}
		return ModeLight
	}
	return mode
}
