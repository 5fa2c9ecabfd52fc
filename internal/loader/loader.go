// Package loader holds the per-request batch loaders.  A loader collects the
// keys asked for within a short wait window and fetches them with one DAO
// call, caching the results for the rest of the request.  Loaders are never
// shared between requests so nothing needs invalidating.
package loader

import (
	"context"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/metrics"
	"github.com/andrewwphillips/ntlango/internal/model"
)

// DefaultWait is how long a loader waits for more keys before fetching
const DefaultWait = 2 * time.Millisecond

// InterestCounter counts the users interested in each category
type InterestCounter interface {
	CountByInterestCategoryIDs(ctx context.Context, categoryIDs []string) (map[string]int, error)
}

// UserReader reads users by ID
type UserReader interface {
	ReadUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
}

type loaderOptions struct {
	wait    time.Duration
	metrics *metrics.Collection
}

// WithWait sets the batching window
func WithWait(d time.Duration) func(*loaderOptions) {
	return func(opt *loaderOptions) {
		opt.wait = d
	}
}

// WithMetrics records the size of each batch
func WithMetrics(m *metrics.Collection) func(*loaderOptions) {
	return func(opt *loaderOptions) {
		opt.metrics = m
	}
}

func getOptions(opts []func(*loaderOptions)) loaderOptions {
	opt := loaderOptions{wait: DefaultWait}
	for _, o := range opts {
		o(&opt)
	}
	return opt
}

// NewInterestCount creates a loader of the number of users interested in a
// category.  Categories missing from the counter's result load as 0.
func NewInterestCount(counter InterestCounter, opts ...func(*loaderOptions)) *dataloader.Loader[string, int] {
	opt := getOptions(opts)
	batch := func(ctx context.Context, keys []string) []*dataloader.Result[int] {
		opt.metrics.ObserveBatch("interestCount", len(keys))
		results := make([]*dataloader.Result[int], len(keys))
		counts, err := counter.CountByInterestCategoryIDs(ctx, keys)
		for i, k := range keys {
			if err != nil {
				results[i] = &dataloader.Result[int]{Error: err}
				continue
			}
			results[i] = &dataloader.Result[int]{Data: counts[k]} // zero if absent
		}
		return results
	}
	return dataloader.NewBatchedLoader(batch, dataloader.WithWait[string, int](opt.wait))
}

// NewUser creates a loader of users by hex ID.  A missing user loads as nil.
func NewUser(reader UserReader, opts ...func(*loaderOptions)) *dataloader.Loader[string, *model.User] {
	opt := getOptions(opts)
	batch := func(ctx context.Context, keys []string) []*dataloader.Result[*model.User] {
		opt.metrics.ObserveBatch("user", len(keys))
		results := make([]*dataloader.Result[*model.User], len(keys))
		ids := make([]primitive.ObjectID, 0, len(keys))
		for _, k := range keys {
			if id, err := primitive.ObjectIDFromHex(k); err == nil {
				ids = append(ids, id)
			}
		}
		users, err := reader.ReadUsersByIDs(ctx, ids)
		byID := make(map[string]*model.User, len(users))
		for i := range users {
			byID[users[i].ID.Hex()] = &users[i]
		}
		for i, k := range keys {
			if err != nil {
				results[i] = &dataloader.Result[*model.User]{Error: err}
				continue
			}
			results[i] = &dataloader.Result[*model.User]{Data: byID[k]}
		}
		return results
	}
	return dataloader.NewBatchedLoader(batch, dataloader.WithWait[string, *model.User](opt.wait))
}

// Loaders is the set of loaders for one request
type Loaders struct {
	InterestCount *dataloader.Loader[string, int]
	User          *dataloader.Loader[string, *model.User]
}

// Factory makes a new set of Loaders for each request
type Factory struct {
	counter InterestCounter
	users   UserReader
	opts    []func(*loaderOptions)
}

// NewFactory creates a Factory for loaders backed by the given DAOs
func NewFactory(counter InterestCounter, users UserReader, opts ...func(*loaderOptions)) *Factory {
	return &Factory{counter: counter, users: users, opts: opts}
}

// New creates a fresh set of loaders
func (f *Factory) New() *Loaders {
	return &Loaders{
		InterestCount: NewInterestCount(f.counter, f.opts...),
		User:          NewUser(f.users, f.opts...),
	}
}

type loadersKey struct{}

// With returns a context holding l
func With(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

// From returns the loaders of the request, if With was called
func From(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey{}).(*Loaders)
	return l, ok && l != nil
}

type loaderHandler struct {
	inner   http.Handler
	factory *Factory
}

// Handler adds a fresh set of loaders to the context of every request
func Handler(factory *Factory, inner http.Handler) http.Handler {
	return &loaderHandler{inner: inner, factory: factory}
}

func (h *loaderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, r.WithContext(With(r.Context(), h.factory.New())))
}
