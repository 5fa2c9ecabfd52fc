// Package secrets reads named secrets (such as the JWT signing key) from a
// Source and caches them for a limited time so that rotated values are
// picked up without a restart.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrNotFound is returned for a name that the source does not have
var ErrNotFound = errors.New("secret not found")

// Source loads all secrets at once, as a secret store returns a JSON blob
type Source interface {
	Load(ctx context.Context) (map[string]string, error)
}

// FileSource reads a JSON object of name/value pairs from a file
type FileSource string

// Load reads the file
func (f FileSource) Load(context.Context) (map[string]string, error) {
	buf, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	return decode(buf)
}

// EnvSource reads a JSON object of name/value pairs from an environment variable
type EnvSource string

// Load reads the variable
func (e EnvSource) Load(context.Context) (map[string]string, error) {
	v, ok := os.LookupEnv(string(e))
	if !ok {
		return nil, fmt.Errorf("environment variable %s is not set", string(e))
	}
	return decode([]byte(v))
}

// MapSource holds the secrets in memory
type MapSource map[string]string

// Load returns a copy of the map
func (m MapSource) Load(context.Context) (map[string]string, error) {
	r := make(map[string]string, len(m))
	for k, v := range m {
		r[k] = v
	}
	return r, nil
}

func decode(buf []byte) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, fmt.Errorf("decoding secrets: %w", err)
	}
	return m, nil
}

// Client caches the secrets of a Source for a fixed time
type Client struct {
	source Source
	cache  *expirable.LRU[string, string]
	mu     sync.Mutex // serialises reloads
}

// New creates a client whose cached values expire after ttl
func New(source Source, ttl time.Duration) *Client {
	return &Client{
		source: source,
		cache:  expirable.NewLRU[string, string](64, nil, ttl),
	}
}

// Get returns the named secret, reloading from the source on a miss
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	if v, ok := c.cache.Get(name); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(name); ok {
		return v, nil // loaded while we waited
	}
	all, err := c.source.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("loading secrets: %w", err)
	}
	for k, v := range all {
		c.cache.Add(k, v)
	}
	v, ok := all[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, nil
}

// Purge empties the cache so the next Get reloads
func (c *Client) Purge() {
	c.cache.Purge()
}
