package testutils

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"buglog/internal/domain"
	"buglog/internal/pool"
	"buglog/pkg/db"

	"gorm.io/gorm"
)

type Options struct {
	PoolSize       int
	AcquireTimeout time.Duration
}

// SetupPool opens a fresh on-disk sqlite database for one test, creates the
// user and bug_log tables and wraps it in a pool.
func SetupPool(t *testing.T, opts Options) (*pool.Pool, *gorm.DB) {
	t.Helper()

	if opts.PoolSize <= 0 {
		opts.PoolSize = 4
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = 5 * time.Second
	}

	path := filepath.Join(t.TempDir(), "buglog.db")
	gdb, err := db.OpenGorm(db.Config{
		DSN:          fmt.Sprintf("sqlite:%s?_busy_timeout=5000&_journal_mode=WAL", path),
		MaxOpenConns: opts.PoolSize,
		MaxIdleConns: opts.PoolSize,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&domain.User{}, &domain.Event{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	p, err := pool.New(gdb, pool.Options{AcquireTimeout: opts.AcquireTimeout})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, gdb
}

func Ptr[T any](v T) *T { return &v }
