// ABOUTME: Charm KV client wrapper using the transactional Do API
// ABOUTME: Opens the database per operation so the CLI, server, and MCP can share it

package charm

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/charmbracelet/log"
)

const (
	// DBName is the name of the charm kv database for todos.
	DBName = "todo"
)

// Client holds configuration for KV operations. It does not hold a
// connection; each call opens the database, runs, and closes it.
type Client struct {
	dbName         string
	autoSync       bool
	staleThreshold time.Duration
	logger         *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAutoSync enables or disables sync after writes.
func WithAutoSync(enabled bool) Option {
	return func(c *Client) {
		c.autoSync = enabled
	}
}

// WithStaleThreshold makes reads sync first when the last sync is older
// than d. Zero disables the check.
func WithStaleThreshold(d time.Duration) Option {
	return func(c *Client) {
		c.staleThreshold = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client talking to host. An empty host keeps
// whatever CHARM_HOST the environment already carries.
func NewClient(host string, opts ...Option) (*Client, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, err
		}
	}

	c := &Client{
		dbName:   DBName,
		autoSync: true,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get retrieves a value by key.
func (c *Client) Get(key []byte) ([]byte, error) {
	if err := c.SyncIfStale(); err != nil {
		return nil, err
	}
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get(key)
		return err
	})
	return val, err
}

// DoReadOnly runs fn with read-only database access.
func (c *Client) DoReadOnly(fn func(k *kv.KV) error) error {
	if err := c.SyncIfStale(); err != nil {
		return err
	}
	return kv.DoReadOnly(c.dbName, fn)
}

// Do runs fn with write access and syncs afterwards when auto-sync is on.
func (c *Client) Do(fn func(k *kv.KV) error) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := fn(k); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *Client) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// LastSyncTime returns the timestamp of the last sync.
func (c *Client) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

// IsStale reports whether the last sync is older than the threshold.
func (c *Client) IsStale() bool {
	if c.staleThreshold == 0 {
		return false
	}
	var isStale bool
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		isStale = k.IsStale(c.staleThreshold)
		return nil
	})
	return isStale
}

// SyncIfStale syncs with the charm server if data is stale.
func (c *Client) SyncIfStale() error {
	if !c.IsStale() {
		return nil
	}
	c.logger.Info("data stale, syncing", "threshold", c.staleThreshold)
	return c.Sync()
}

// Reset clears all local data.
func (c *Client) Reset() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Reset()
	})
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", err
	}
	return cc.ID()
}

// User returns the current charm user.
func (c *Client) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link registers this device with the charm server.
func (c *Client) Link() error {
	_, err := c.User()
	return err
}

// StaleThreshold returns the age after which reads sync first.
func (c *Client) StaleThreshold() time.Duration {
	return c.staleThreshold
}

// AutoSync reports whether writes are pushed immediately.
func (c *Client) AutoSync() bool {
	return c.autoSync
}

// Close is a no-op; connections close after each operation.
func (c *Client) Close() error {
	return nil
}
