package impl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"buglog/internal/domain"
	"buglog/internal/dto"
	"buglog/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestEventAssignsIDAndIP(t *testing.T) {
	p, gdb := testutils.SetupPool(t, testutils.Options{})
	svc := NewBugLogServiceImpl(p, nil)
	svc.NewID = func() string { return "fixed-id" }

	payload, err := dto.DecodeEvent(`{"id":"from-client","ip":"1.1.1.1","title":"boom","custom":{"x":true}}`)
	require.NoError(t, err)

	ev, err := svc.IngestEvent(context.Background(), payload, "192.0.2.7")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", ev.ID)
	assert.Equal(t, "192.0.2.7", *ev.IP)

	var stored domain.Event
	require.NoError(t, gdb.First(&stored, "id = ?", "fixed-id").Error)
	assert.Equal(t, "192.0.2.7", *stored.IP)
	assert.Equal(t, "boom", *stored.Title)
	assert.Equal(t, `{"x":true}`, stored.Custom.Text())

	var clientRows int64
	require.NoError(t, gdb.Model(&domain.Event{}).Where("id = ?", "from-client").Count(&clientRows).Error)
	assert.Zero(t, clientRows)
}

func TestConcurrentIngestBeyondPoolSize(t *testing.T) {
	const poolSize, k = 3, 20
	p, _ := testutils.SetupPool(t, testutils.Options{PoolSize: poolSize, AcquireTimeout: 10 * time.Second})
	svc := NewBugLogServiceImpl(p, nil)

	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := dto.EventPayload{Title: testutils.Ptr(fmt.Sprintf("event %d", i))}
			_, err := svc.IngestEvent(context.Background(), payload, "127.0.0.1")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	page, err := svc.ListEvents(context.Background(), domain.PageRequest{PageNo: 1, PageSize: domain.MaxPageSize})
	require.NoError(t, err)
	require.Equal(t, int64(k), page.Total)

	ids := map[string]struct{}{}
	for _, ev := range page.Records {
		ids[ev.ID] = struct{}{}
	}
	assert.Len(t, ids, k)
	assert.Equal(t, 0, p.Stats().InUse)
}

func TestListUsers(t *testing.T) {
	p, gdb := testutils.SetupPool(t, testutils.Options{})
	svc := NewBugLogServiceImpl(p, nil)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	require.NoError(t, gdb.Create(&domain.User{ID: "u-1", Name: testutils.Ptr("alice")}).Error)
	users, err = svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-1", users[0].ID)
}

func TestFindUser(t *testing.T) {
	p, gdb := testutils.SetupPool(t, testutils.Options{})
	svc := NewBugLogServiceImpl(p, nil)
	require.NoError(t, gdb.Create(&domain.User{ID: "u-1"}).Error)

	u, err := svc.FindUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	_, err = svc.FindUser(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestClosedPoolSurfacesDBError(t *testing.T) {
	p, _ := testutils.SetupPool(t, testutils.Options{})
	svc := NewBugLogServiceImpl(p, nil)
	require.NoError(t, p.Close())

	_, err := svc.IngestEvent(context.Background(), dto.EventPayload{}, "127.0.0.1")
	assert.True(t, errors.Is(err, domain.ErrDB))
	assert.Error(t, svc.Health(context.Background()))
}
