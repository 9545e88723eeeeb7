package app

import (
	"context"
	"fmt"

	"github.com/atomic-arch/ghusers/internal/config"
	"github.com/atomic-arch/ghusers/internal/domain"
	"github.com/atomic-arch/ghusers/internal/github"
	"github.com/atomic-arch/ghusers/internal/logger"
	"github.com/atomic-arch/ghusers/internal/profile"
	"github.com/atomic-arch/ghusers/pkg/httpclient"
	"github.com/atomic-arch/ghusers/pkg/networking"
	"github.com/atomic-arch/ghusers/pkg/reachability"
)

// App wires configuration, transport, interceptors, and the GitHub use case.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	monitor  *reachability.Monitor
	client   *networking.Client
	users    *domain.UserUseCase
	enricher *profile.Enricher
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	transport networking.Transport
	observer  reachability.PathObserver
}

// WithTransport replaces the resty-backed transport.
func WithTransport(t networking.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithPathObserver replaces the interface poller used by the reachability monitor.
func WithPathObserver(obs reachability.PathObserver) Option {
	return func(o *options) { o.observer = obs }
}

// New builds the runtime. The reachability monitor, when enabled, lives until
// Close is called or ctx is done.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = networking.NewHTTPTransport(httpclient.NewRestyClient(cfg.HTTPTimeout))
	}

	var monitor *reachability.Monitor
	if cfg.ReachabilityCheck {
		if o.observer == nil {
			o.observer = reachability.NewInterfaceObserver(cfg.ReachabilityPoll, reachability.SystemInterfaces)
		}
		m, err := reachability.New(ctx, o.observer)
		if err != nil {
			return nil, fmt.Errorf("start reachability monitor: %w", err)
		}
		monitor = m
		log.InfoObj("reachability monitor started", "reachability", map[string]any{
			"connected":  m.IsConnected(),
			"connection": m.ConnectionType().String(),
		})
	}

	logging := networking.NewLoggingInterceptor(log)
	apiOpts := []networking.Option{
		networking.WithChain(networking.NewChain(networking.BearerToken(cfg.GitHubToken), logging)),
	}
	pageOpts := []networking.Option{
		networking.WithChain(networking.NewChain(logging)),
	}
	if monitor != nil {
		apiOpts = append(apiOpts, networking.WithConnectivity(monitor))
		pageOpts = append(pageOpts, networking.WithConnectivity(monitor))
	}

	client := networking.NewClient(networking.Configuration{
		BaseURL:        cfg.GitHubBaseURL,
		DefaultHeaders: cfg.DefaultHeaders(),
	}, o.transport, apiOpts...)

	// Profile pages are absolute URLs and must not carry the API token.
	pages := networking.NewClient(networking.Configuration{
		DefaultHeaders: map[string]string{"User-Agent": cfg.UserAgent},
	}, o.transport, pageOpts...)

	return &App{
		cfg:      cfg,
		log:      log,
		monitor:  monitor,
		client:   client,
		users:    domain.NewUserUseCase(github.NewRepository(client)),
		enricher: profile.NewEnricher(pages, log),
	}, nil
}

// Client exposes the GitHub API client, e.g. to register extra interceptors.
func (a *App) Client() *networking.Client { return a.client }

// Monitor returns the reachability monitor, or nil when checks are disabled.
func (a *App) Monitor() *reachability.Monitor { return a.monitor }

// ListUsers returns one page of GitHub users.
func (a *App) ListUsers(ctx context.Context, perPage, since int) ([]domain.User, error) {
	return a.users.ListUsers(ctx, perPage, since)
}

// UserDetail returns a user's profile, optionally enriched with page metadata.
func (a *App) UserDetail(ctx context.Context, login string, enrich bool) (domain.UserDetail, error) {
	detail, err := a.users.User(ctx, login)
	if err != nil {
		return domain.UserDetail{}, err
	}
	if enrich {
		detail = a.enricher.Enrich(ctx, detail)
	}
	return detail, nil
}

// Close stops background observers.
func (a *App) Close() error {
	if a == nil || a.monitor == nil {
		return nil
	}
	return a.monitor.Close()
}
