package server_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/auth"
	"github.com/andrewwphillips/ntlango/internal/loader"
	"github.com/andrewwphillips/ntlango/internal/metrics"
	"github.com/andrewwphillips/ntlango/internal/model"
	"github.com/andrewwphillips/ntlango/internal/server"
)

// echo reports what the GraphQL handler would see in its context
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user := "anonymous"
	if claims, ok := auth.FromContext(r.Context()); ok {
		user = claims.Username
	}
	_, hasLoaders := loader.From(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if hasLoaders {
		_, _ = w.Write([]byte(`{"data":{"user":"` + user + `","loaders":true}}`))
		return
	}
	_, _ = w.Write([]byte(`{"data":{"user":"` + user + `"}}`))
})

type noUsers struct{}

func (noUsers) CountByInterestCategoryIDs(context.Context, []string) (map[string]int, error) {
	return nil, nil
}

func (noUsers) ReadUsersByIDs(context.Context, []primitive.ObjectID) ([]model.User, error) {
	return nil, nil
}

func do(h http.Handler, method, path, token string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{"query":"{ x }"}`))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGraphQLRoute(t *testing.T) {
	issuer := auth.NewIssuer(auth.StaticKey("k"), time.Hour)
	router := server.NewRouter(server.Options{
		GraphQL: echo,
		Issuer:  issuer,
		Loaders: loader.NewFactory(noUsers{}, noUsers{}),
	})

	w := do(router, http.MethodPost, server.GraphQLPath, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"user":"anonymous","loaders":true}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(server.RequestIDHeader))

	token, err := issuer.Sign(context.Background(), &model.User{ID: primitive.NewObjectID(), Username: "ann", UserRole: "User"})
	require.NoError(t, err)
	w = do(router, http.MethodPost, server.GraphQLPath, token)
	assert.JSONEq(t, `{"data":{"user":"ann","loaders":true}}`, w.Body.String())

	w = do(router, http.MethodPost, server.GraphQLPath, "garbage")
	assert.JSONEq(t, `{"data":{"user":"anonymous","loaders":true}}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	router := server.NewRouter(server.Options{GraphQL: echo})
	const id = "0b8f6a4e-6f8e-4b5e-9d47-3c3f0f2a9d10"
	w := do(router, http.MethodPost, server.GraphQLPath, "", server.RequestIDHeader, id)
	assert.Equal(t, id, w.Header().Get(server.RequestIDHeader))

	w = do(router, http.MethodPost, server.GraphQLPath, "", server.RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(server.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	healthy := true
	router := server.NewRouter(server.Options{
		GraphQL: echo,
		Health: func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("no database")
		},
	})
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)
	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, do(router, http.MethodGet, "/health", "").Code)
}

func TestCORS(t *testing.T) {
	router := server.NewRouter(server.Options{GraphQL: echo, CORSOrigins: []string{"https://app.example"}})

	w := do(router, http.MethodOptions, server.GraphQLPath, "", "Origin", "https://app.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(router, http.MethodPost, server.GraphQLPath, "", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	router := server.NewRouter(server.Options{GraphQL: echo, Metrics: m, Gatherer: reg, RateLimit: 0.001, RateBurst: 2})

	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, server.GraphQLPath, "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, server.GraphQLPath, "").Code)
	w := do(router, http.MethodPost, server.GraphQLPath, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// other endpoints are not limited
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)

	w = do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ntlango_rate_limited_requests_total 1")
	assert.Contains(t, w.Body.String(), `ntlango_http_requests_total{code="429",path="/graphql"} 1`)
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	router := server.NewRouter(server.Options{GraphQL: slow, RequestTimeout: 10 * time.Millisecond})
	w := do(router, http.MethodPost, server.GraphQLPath, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"errors":[{"message":"timeout"}]}`, w.Body.String())
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, "127.0.0.1:0", echo, slogDiscard()) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
