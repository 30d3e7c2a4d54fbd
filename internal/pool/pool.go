// Package pool hands out database connections from the process-wide pool.
// A Conn is owned by one request at a time and must be released when the
// request is done with it; Do does that on every exit path.
package pool

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"buglog/internal/domain"
	"buglog/internal/observability/metrics"

	"gorm.io/gorm"
)

type Options struct {
	// AcquireTimeout bounds the wait for an idle connection. Zero waits until
	// the caller's context is done.
	AcquireTimeout time.Duration
}

type Pool struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	timeout time.Duration
}

// Conn is a single connection checked out of the pool.
type Conn struct {
	raw  *sql.Conn
	db   *gorm.DB
	once sync.Once
}

func New(db *gorm.DB, opts Options) (*Pool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: pool handle: %w", domain.ErrDB, err)
	}
	return &Pool{db: db, sqlDB: sqlDB, timeout: opts.AcquireTimeout}, nil
}

// Acquire waits for an idle connection. Only the calling goroutine blocks.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	actx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := p.sqlDB.Conn(actx)
	metrics.PoolAcquireSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %w", domain.ErrDB, err)
	}

	tx := p.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = raw
	return &Conn{raw: raw, db: tx}, nil
}

// Do runs fn with a connection and releases it afterwards, even if fn panics.
func (p *Pool) Do(ctx context.Context, fn func(c *Conn) error) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return fn(c)
}

// Ping acquires a connection and round-trips to the database.
func (p *Pool) Ping(ctx context.Context) error {
	return p.Do(ctx, func(c *Conn) error {
		if err := c.raw.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: ping: %w", domain.ErrDB, err)
		}
		return nil
	})
}

// Stats reports the underlying database/sql pool counters.
func (p *Pool) Stats() sql.DBStats { return p.sqlDB.Stats() }

// SQLDB exposes the underlying handle for metrics collection.
func (p *Pool) SQLDB() *sql.DB { return p.sqlDB }

func (p *Pool) Close() error { return p.sqlDB.Close() }

// DB returns a gorm handle pinned to this connection.
func (c *Conn) DB() *gorm.DB { return c.db }

// Release returns the connection to the pool. It is safe to call more than once.
func (c *Conn) Release() {
	c.once.Do(func() {
		_ = c.raw.Close()
	})
}
