// Package connecthub composes the client SDK: persisted storage, the HTTP
// client, the session and theme managers, and the typed resource services.
// Everything is dependency-injected with an explicit lifecycle; there is no
// ambient global state.
package connecthub

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/connecthub/connecthub-go/config"
	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/meetings"
	"github.com/connecthub/connecthub-go/members"
	"github.com/connecthub/connecthub-go/messages"
	"github.com/connecthub/connecthub-go/referrals"
	"github.com/connecthub/connecthub-go/session"
	"github.com/connecthub/connecthub-go/sitesettings"
	"github.com/connecthub/connecthub-go/storage"
	"github.com/connecthub/connecthub-go/storage/filestore"
	"github.com/connecthub/connecthub-go/storage/redisstore"
	"github.com/connecthub/connecthub-go/taxonomy"
	"github.com/connecthub/connecthub-go/theme"
	"github.com/connecthub/connecthub-go/trainings"
)

// App holds the wired SDK. Construct with New, then call Init once before
// use; Close releases owned resources at process exit.
type App struct {
	Client   *httpclient.Client
	Sessions *session.Manager
	Theme    *theme.Manager

	Members      *members.Service
	Meetings     *meetings.Service
	Trainings    *trainings.Service
	Referrals    *referrals.Service
	Messages     *messages.Service
	Taxonomy     *taxonomy.Service
	SiteSettings *sitesettings.Service

	store       storage.Store
	redisClient *redis.Client // owned, closed by Close; nil for the file backend
	logger      zerolog.Logger
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	logger       zerolog.Logger
	loggerSet    bool
	store        storage.Store
	schemeSource theme.SchemeSource
	httpClient   *http.Client
}

// WithLogger sets the logger shared by every component.
func WithLogger(l zerolog.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
		o.loggerSet = true
	}
}

// WithStore overrides the storage backend selected by the configuration.
func WithStore(s storage.Store) Option {
	return func(o *appOptions) { o.store = s }
}

// WithSchemeSource injects the OS display-scheme reader for the theme manager.
func WithSchemeSource(src theme.SchemeSource) Option {
	return func(o *appOptions) { o.schemeSource = src }
}

// WithHTTPClient replaces the underlying HTTP transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *appOptions) { o.httpClient = hc }
}

// New wires the SDK from configuration.
func New(cfg *config.Config, options ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("[connecthub.New] config is required")
	}

	opts := &appOptions{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(opts)
	}

	app := &App{logger: opts.logger}

	store, err := app.buildStore(cfg, opts)
	if err != nil {
		return nil, err
	}
	app.store = store

	clientOptions := []httpclient.Option{
		httpclient.WithTimeout(cfg.API.Timeout),
		httpclient.WithLogger(app.logger),
		// The session manager does not exist yet; both hooks resolve it
		// lazily so the client can be built first.
		httpclient.WithTokenSource(httpclient.TokenSourceFunc(func() string {
			if app.Sessions == nil {
				return ""
			}
			return app.Sessions.Token()
		})),
		httpclient.WithAuthFailureHandler(func() {
			if app.Sessions != nil {
				app.Sessions.Invalidate()
			}
		}),
	}
	if opts.httpClient != nil {
		clientOptions = append(clientOptions, httpclient.WithHTTPClient(opts.httpClient))
	}

	client, err := httpclient.New(cfg.API.BaseURL, clientOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[connecthub.New] httpclient.New")
	}
	app.Client = client

	app.Sessions, err = session.NewManager(client, store, session.WithLogger(app.logger))
	if err != nil {
		return nil, errors.Wrap(err, "[connecthub.New] session.NewManager")
	}

	themeOptions := []theme.ManagerOption{theme.WithLogger(app.logger)}
	if opts.schemeSource != nil {
		themeOptions = append(themeOptions, theme.WithSchemeSource(opts.schemeSource))
	}
	app.Theme, err = theme.NewManager(store, themeOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[connecthub.New] theme.NewManager")
	}

	if err := app.buildServices(client); err != nil {
		return nil, err
	}

	return app, nil
}

// Init performs the one-time storage reads: the session record and the theme
// preference. It is the only transition out of the session manager's unknown
// state.
func (a *App) Init(ctx context.Context) error {
	if err := a.Sessions.Init(ctx); err != nil {
		return errors.Wrap(err, "[App.Init] session init")
	}
	if err := a.Theme.Init(ctx); err != nil {
		return errors.Wrap(err, "[App.Init] theme init")
	}
	return nil
}

// Close releases owned resources. With the file backend it is a no-op.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}

func (a *App) buildStore(cfg *config.Config, opts *appOptions) (storage.Store, error) {
	if opts.store != nil {
		return opts.store, nil
	}

	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := redisstore.NewWithPrefix(rc, cfg.Redis.KeyPrefix)
		if err != nil {
			_ = rc.Close()
			return nil, errors.Wrap(err, "[App.buildStore] redisstore.NewWithPrefix")
		}
		a.redisClient = rc
		return store, nil
	default:
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, errors.Wrap(err, "[App.buildStore] filestore.New")
		}
		return store, nil
	}
}

func (a *App) buildServices(client *httpclient.Client) error {
	var err error
	if a.Members, err = members.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] members")
	}
	if a.Meetings, err = meetings.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] meetings")
	}
	if a.Trainings, err = trainings.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] trainings")
	}
	if a.Referrals, err = referrals.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] referrals")
	}
	if a.Messages, err = messages.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] messages")
	}
	if a.Taxonomy, err = taxonomy.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] taxonomy")
	}
	if a.SiteSettings, err = sitesettings.NewService(client); err != nil {
		return errors.Wrap(err, "[App.buildServices] sitesettings")
	}
	return nil
}
