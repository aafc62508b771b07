package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/vmihailenco/msgpack/v5"
)

// Entry is a cached transform result
type Entry struct {
	Code       []byte   `msgpack:"code"`
	Components []string `msgpack:"components"`
}

// Cache stores transform results by input key; it is safe for concurrent use.
// With a base URL entries are also persisted, one msgpack file per key.
type Cache struct {
	mux     sync.RWMutex
	entries map[string]*Entry
	fs      afs.Service
	baseURL string
}

// Option configures cache
type Option func(*Cache)

// WithStore persists entries under baseURL
func WithStore(fs afs.Service, baseURL string) Option {
	return func(c *Cache) {
		c.fs = fs
		c.baseURL = baseURL
	}
}

// New creates a cache
func New(options ...Option) *Cache {
	ret := &Cache{entries: map[string]*Entry{}}
	for _, opt := range options {
		opt(ret)
	}
	if ret.baseURL != "" && ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// Len returns number of in-memory entries
func (c *Cache) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.entries)
}

// Get returns entry for key, loading it from the store when not in memory
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	c.mux.RLock()
	entry, ok := c.entries[key]
	c.mux.RUnlock()
	if ok || c.baseURL == "" {
		return entry, ok, nil
	}
	URL := c.entryURL(key)
	exists, err := c.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return nil, false, err
	}
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", URL, err)
	}
	entry = &Entry{}
	if err = msgpack.Unmarshal(data, entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry %s: %w", URL, err)
	}
	c.mux.Lock()
	c.entries[key] = entry
	c.mux.Unlock()
	return entry, true, nil
}

// Put stores entry
func (c *Cache) Put(ctx context.Context, key string, entry *Entry) error {
	c.mux.Lock()
	c.entries[key] = entry
	c.mux.Unlock()
	if c.baseURL == "" {
		return nil
	}
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	URL := c.entryURL(key)
	if err = c.fs.Upload(ctx, URL, os.FileMode(0644), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", URL, err)
	}
	return nil
}

func (c *Cache) entryURL(key string) string {
	return url.Join(c.baseURL, key+".msgpack")
}
