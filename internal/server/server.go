// Package server is the HTTP front end: a gin router serving the GraphQL
// handler along with health and metrics endpoints
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/loader"
	"github.com/andrewwphillips/ntlango/internal/metrics"
)

// GraphQLPath is where the GraphQL handler is served
const GraphQLPath = "/graphql"

// timeoutBody is sent in place of a GraphQL response that took too long
const timeoutBody = `{"errors":[{"message":"timeout"}]}`

// Options configure the router.  GraphQL is required, the rest are optional.
type Options struct {
	GraphQL        http.Handler
	Issuer         *auth.Issuer    // nil = no authentication
	Loaders        *loader.Factory // nil = no request batching
	Metrics        *metrics.Collection
	Gatherer       prometheus.Gatherer // nil = no /metrics
	Log            *slog.Logger
	CORSOrigins    []string
	RateLimit      float64 // per second per IP, 0 = unlimited
	RateBurst      int
	RequestTimeout time.Duration
	Health         func(context.Context) error
}

// NewRouter creates the router
func NewRouter(o Options) *gin.Engine {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(o.Log), requestMetrics(o.Metrics), cors(o.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		if o.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := o.Health(ctx); err != nil {
				o.Log.WarnContext(ctx, "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if o.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group(GraphQLPath)
	if o.RateLimit > 0 {
		api.Use(newRateLimiter(rate.Limit(o.RateLimit), max(o.RateBurst, 1)).middleware(o.Metrics))
	}
	h := graphQLHandler(o)
	api.POST("", gin.WrapH(h))
	api.GET("", gin.WrapH(h))
	return router
}

// graphQLHandler wraps the GraphQL handler.  The innermost wrapper runs
// last so the loaders and claims are in the context the resolvers get.
func graphQLHandler(o Options) http.Handler {
	h := o.GraphQL
	if o.Loaders != nil {
		h = loader.Handler(o.Loaders, h)
	}
	if o.Issuer != nil {
		h = auth.Handler(o.Issuer, o.Log, h)
	}
	if o.RequestTimeout > 0 {
		h = http.TimeoutHandler(h, o.RequestTimeout, timeoutBody)
	}
	return h
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully
func Run(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", addr, "path", GraphQLPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
