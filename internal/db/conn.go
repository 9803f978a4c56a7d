package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Options configures the shared connection pool.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Driver == "" {
		o.Driver = "mysql"
	}
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = 25
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = 25
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = 10 * time.Minute
	}
	if o.ConnMaxIdleTime == 0 {
		o.ConnMaxIdleTime = 5 * time.Minute
	}
	if o.PingTimeout == 0 {
		o.PingTimeout = 3 * time.Second
	}
	return o
}

// Opener opens a database handle; sql.Open in production.
type Opener func(driver, dsn string) (*sql.DB, error)

// Conn is the process-wide store handle. It connects on first use; callers
// that arrive while the first connection attempt is in flight wait for it
// instead of opening their own. A failed attempt is not remembered.
type Conn struct {
	opts  Options
	open  Opener
	log   *zap.Logger
	group singleflight.Group

	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

var ErrClosed = errors.New("database connection closed")

func NewConn(opts Options, log *zap.Logger) *Conn {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conn{opts: opts.withDefaults(), open: sql.Open, log: log}
}

// WithOpener replaces sql.Open, used by tests.
func (c *Conn) WithOpener(open Opener) *Conn {
	c.open = open
	return c
}

// FromDB wraps an already opened handle.
func FromDB(db *sql.DB) *Conn {
	return &Conn{opts: Options{}.withDefaults(), open: sql.Open, log: zap.NewNop(), db: db}
}

// DB returns the shared handle, connecting if needed.
func (c *Conn) DB(ctx context.Context) (*sql.DB, error) {
	c.mu.RLock()
	db, closed := c.db, c.closed
	c.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if db != nil {
		return db, nil
	}

	// Shared attempt, detached from the first caller's cancellation.
	connectCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("connect", func() (any, error) {
		c.mu.RLock()
		existing, closed := c.db, c.closed
		c.mu.RUnlock()
		if closed {
			return nil, ErrClosed
		}
		if existing != nil {
			return existing, nil
		}
		fresh, err := c.connect(connectCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			_ = fresh.Close()
			return nil, ErrClosed
		}
		c.db = fresh
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

func (c *Conn) connect(ctx context.Context) (*sql.DB, error) {
	db, err := c.open(c.opts.Driver, c.opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(c.opts.MaxOpenConns)
	db.SetMaxIdleConns(c.opts.MaxIdleConns)
	db.SetConnMaxLifetime(c.opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(c.opts.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, c.opts.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		c.log.Warn("database ping failed", zap.String("driver", c.opts.Driver), zap.Error(err))
		return nil, fmt.Errorf("ping db: %w", err)
	}

	c.log.Info("database connected", zap.String("driver", c.opts.Driver))
	return db, nil
}

// Ping checks the connection, connecting first if needed.
func (c *Conn) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the pool. Later calls to DB return ErrClosed.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
