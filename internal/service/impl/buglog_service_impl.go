package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"buglog/internal/domain"
	"buglog/internal/dto"
	"buglog/internal/observability/metrics"
	"buglog/internal/pool"
	"buglog/internal/store"

	"github.com/google/uuid"
)

// BugLogServiceImpl runs every operation on its own pooled connection.
type BugLogServiceImpl struct {
	Pool   *pool.Pool
	Logger *slog.Logger
	NewID  func() string
}

func NewBugLogServiceImpl(p *pool.Pool, logger *slog.Logger) *BugLogServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BugLogServiceImpl{Pool: p, Logger: logger, NewID: uuid.NewString}
}

func (s *BugLogServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	var users []domain.User
	err := s.Pool.Do(ctx, func(c *pool.Conn) error {
		var err error
		users, err = store.New(c.DB()).Users().SelectAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "listed users",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// FindUser returns domain.ErrNotFound when no user has the id.
func (s *BugLogServiceImpl) FindUser(ctx context.Context, id string) (*domain.User, error) {
	var user *domain.User
	err := s.Pool.Do(ctx, func(c *pool.Conn) error {
		var err error
		user, err = store.New(c.DB()).Users().SelectByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return user, nil
}

func (s *BugLogServiceImpl) IngestEvent(ctx context.Context, p dto.EventPayload, ip string) (*domain.Event, error) {
	ev := p.ToEvent(s.NewID(), ip)
	err := s.Pool.Do(ctx, func(c *pool.Conn) error {
		return store.New(c.DB()).Events().Insert(ctx, ev)
	})
	if err != nil {
		metrics.EventsIngestedTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.EventsIngestedTotal.WithLabelValues("ok").Inc()
	s.Logger.DebugContext(ctx, "event ingested", "event_id", ev.ID, "ip", ip)
	return ev, nil
}

func (s *BugLogServiceImpl) ListEvents(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Event], error) {
	var page domain.Page[domain.Event]
	err := s.Pool.Do(ctx, func(c *pool.Conn) error {
		var err error
		page, err = store.New(c.DB()).Events().SelectPage(ctx, req)
		return err
	})
	return page, err
}

func (s *BugLogServiceImpl) Health(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}
