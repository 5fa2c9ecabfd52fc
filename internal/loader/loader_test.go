package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/andrewwphillips/ntlango/internal/loader"
	"github.com/andrewwphillips/ntlango/internal/model"
)

type fakeCounter struct {
	mu     sync.Mutex
	calls  [][]string
	counts map[string]int
	err    error
}

func (f *fakeCounter) CountByInterestCategoryIDs(_ context.Context, ids []string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), ids...))
	return f.counts, f.err
}

type fakeUsers struct {
	mu    sync.Mutex
	calls int
	users []model.User
}

func (f *fakeUsers) ReadUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var r []model.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				r = append(r, u)
			}
		}
	}
	return r, nil
}

// loadAll calls Load for every key before waiting on any result, as
// concurrent field resolvers do
func loadAll(ctx context.Context, l *dataloader.Loader[string, int], keys ...string) ([]int, error) {
	thunks := make([]dataloader.Thunk[int], len(keys))
	for i, k := range keys {
		thunks[i] = l.Load(ctx, k)
	}
	r := make([]int, len(keys))
	for i, th := range thunks {
		v, err := th()
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

func TestInterestCountBatches(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int{"cat1": 12, "cat2": 3}}
	l := loader.NewInterestCount(counter, loader.WithWait(20*time.Millisecond))

	got, err := loadAll(ctx, l, "cat1", "cat2", "cat3")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 3, 0}, got)
	require.Len(t, counter.calls, 1)
	assert.Equal(t, []string{"cat1", "cat2", "cat3"}, counter.calls[0])

	// cached for the life of the loader
	got, err = loadAll(ctx, l, "cat2", "cat1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 12}, got)
	assert.Len(t, counter.calls, 1)
}

func TestInterestCountDeduplicates(t *testing.T) {
	ctx := context.Background()
	counter := &fakeCounter{counts: map[string]int{"cat1": 7}}
	l := loader.NewInterestCount(counter, loader.WithWait(20*time.Millisecond))

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Load(ctx, "cat1")()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 7, r)
	}
	require.Len(t, counter.calls, 1)
	assert.Equal(t, []string{"cat1"}, counter.calls[0])
}

func TestInterestCountError(t *testing.T) {
	boom := errors.New("boom")
	counter := &fakeCounter{err: boom}
	l := loader.NewInterestCount(counter, loader.WithWait(time.Millisecond))

	_, err := loadAll(context.Background(), l, "cat1", "cat2")
	assert.ErrorIs(t, err, boom)
}

func TestUserLoader(t *testing.T) {
	jane := model.User{ID: primitive.NewObjectID(), Username: "jane"}
	users := &fakeUsers{users: []model.User{jane}}
	l := loader.NewUser(users, loader.WithWait(20*time.Millisecond))

	ctx := context.Background()
	a := l.Load(ctx, jane.ID.Hex())
	b := l.Load(ctx, primitive.NewObjectID().Hex())
	c := l.Load(ctx, "not-hex")

	u, err := a()
	require.NoError(t, err)
	assert.Equal(t, "jane", u.Username)
	u, err = b()
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = c()
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1, users.calls)
}

func TestHandler(t *testing.T) {
	f := loader.NewFactory(&fakeCounter{}, &fakeUsers{})
	var first, second *loader.Loaders
	h := loader.Handler(f, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l, ok := loader.From(r.Context())
		require.True(t, ok)
		if first == nil {
			first = l
		} else {
			second = l
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	require.NotNil(t, second)
	assert.NotSame(t, first, second)

	_, ok := loader.From(context.Background())
	assert.False(t, ok)
}
