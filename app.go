package ntlango

// app.go provides the App type, which connects the layers: DAOs over
// MongoDB, the GraphQL resolvers and the HTTP router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/config"
	"github.com/andrewwphillips/ntlango/internal/dao"
	"github.com/andrewwphillips/ntlango/internal/graph"
	"github.com/andrewwphillips/ntlango/internal/metrics"
	"github.com/andrewwphillips/ntlango/internal/secrets"
	"github.com/andrewwphillips/ntlango/internal/seed"
	"github.com/andrewwphillips/ntlango/internal/server"
)

// Names of the secrets read from the secrets source
const (
	SecretJWT     = "JWT_SECRET"
	SecretMongoDB = "MONGO_DB_URL"
)

// App is a connected instance of the API
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	client   *mongo.Client
	daos     *dao.DAOs
	resolver *graph.Resolver
	handler  http.Handler
}

// New connects to MongoDB, makes sure the indexes exist and builds the
// HTTP handler.  Call Close when done with the App.
func New(ctx context.Context, cfg *config.Config, opts ...func(*options)) (*App, error) {
	opt := options{log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(&opt)
	}
	if opt.registry == nil {
		opt.registry = prometheus.NewRegistry()
		opt.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	if opt.secrets == nil {
		opt.secrets = secretsSource(cfg)
	}
	vault := secrets.New(opt.secrets, cfg.SecretsTTL)

	uri := cfg.MongoURI
	if uri == "" {
		var err error
		if uri, err = vault.Get(ctx, SecretMongoDB); err != nil {
			return nil, fmt.Errorf("no mongo-uri setting and no %s secret: %w", SecretMongoDB, err)
		}
	}
	client, err := dao.Connect(ctx, uri, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database)
	if err := dao.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	m := metrics.New(opt.registry)
	a := &App{
		cfg:    cfg,
		log:    opt.log,
		client: client,
		daos:   dao.New(db, dao.WithLogger(opt.log), dao.WithMetrics(m), dao.WithClock(opt.now)),
	}
	issuer := auth.NewIssuer(signingKey(cfg, vault), cfg.TokenTTL)
	a.resolver = graph.New(stores(a.daos), issuer,
		graph.WithLogger(opt.log), graph.WithMetrics(m), graph.WithLoaderWait(cfg.LoaderWait))

	gql, err := a.resolver.Handler()
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("building GraphQL handler: %w", err)
	}
	a.handler = server.NewRouter(server.Options{
		GraphQL:        gql,
		Issuer:         issuer,
		Loaders:        a.resolver.Loaders(),
		Metrics:        m,
		Gatherer:       opt.registry,
		Log:            opt.log,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		RequestTimeout: cfg.RequestTimeout,
		Health: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	})
	return a, nil
}

// secretsSource is the file if one is configured, else the environment variable
func secretsSource(cfg *config.Config) secrets.Source {
	if cfg.SecretsFile != "" {
		return secrets.FileSource(cfg.SecretsFile)
	}
	return secrets.EnvSource(cfg.SecretsEnv)
}

// signingKey prefers the configured secret.  Otherwise the key is read
// through the cache on each use so a rotated secret takes effect when the
// cached value expires.
func signingKey(cfg *config.Config, vault *secrets.Client) auth.KeySource {
	if cfg.JWTSecret != "" {
		return auth.StaticKey(cfg.JWTSecret)
	}
	return auth.KeyFunc(func(ctx context.Context) ([]byte, error) {
		s, err := vault.Get(ctx, SecretJWT)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	})
}

// stores exposes the DAOs as the interfaces the resolvers use
func stores(d *dao.DAOs) graph.Stores {
	return graph.Stores{
		Users:        d.Users,
		Events:       d.Events,
		Categories:   d.Categories,
		Groups:       d.Groups,
		Participants: d.Participants,
		Follows:      d.Follows,
		Activities:   d.Activities,
		Stats:        d.Stats,
	}
}

// Handler returns the HTTP handler serving /graphql, /health and /metrics
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves the API on the configured address until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	return server.Run(ctx, a.cfg.Addr, a.handler, a.log)
}

// Seed adds the standard categories and groups, plus admin if not nil
func (a *App) Seed(ctx context.Context, admin *seed.Admin) (seed.Result, error) {
	s := &seed.Seeder{
		Users:      a.daos.Users,
		Categories: a.daos.Categories,
		Groups:     a.daos.Groups,
		Log:        a.log,
	}
	return s.Run(ctx, admin)
}

// Close disconnects from MongoDB
func (a *App) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
