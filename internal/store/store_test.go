package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"buglog/internal/domain"
	"buglog/internal/jsonstr"
	"buglog/internal/store"
	"buglog/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	p, gdb := testutils.SetupPool(t, testutils.Options{})
	c, err := p.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return store.New(c.DB()), gdb
}

func TestUserSelectAllEmpty(t *testing.T) {
	st, _ := newStore(t)

	users, err := st.Users().SelectAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	assert.Empty(t, users)

	body, err := json.Marshal(users)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestUserSelectAllIsStable(t *testing.T) {
	st, gdb := newStore(t)
	ctx := context.Background()

	seed := []domain.User{
		{ID: "u-1", Name: testutils.Ptr("alice"), LoginName: testutils.Ptr("alice"), CreateTime: testutils.Ptr(int64(1700000000000))},
		{ID: "u-2", Name: testutils.Ptr("bob"), AppKey: testutils.Ptr("app-1")},
	}
	require.NoError(t, gdb.Create(&seed).Error)

	first, err := st.Users().SelectAll(ctx)
	require.NoError(t, err)
	second, err := st.Users().SelectAll(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, seed, first)
}

func TestUserSelectByID(t *testing.T) {
	st, gdb := newStore(t)
	ctx := context.Background()
	require.NoError(t, gdb.Create(&domain.User{ID: "u-1", Name: testutils.Ptr("alice")}).Error)

	u, err := st.Users().SelectByID(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", *u.Name)

	missing, err := st.Users().SelectByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventInsertKeepsStructuredFields(t *testing.T) {
	st, _ := newStore(t)
	ctx := context.Background()

	ev := &domain.Event{
		ID:         "e-1",
		Title:      testutils.Ptr("crash"),
		Time:       testutils.Ptr(int64(10)),
		Detail:     jsonstr.From([]byte(`{"a":1}`)),
		ActionInfo: jsonstr.From([]byte(`[1,2]`)),
		IP:         testutils.Ptr("10.0.0.1"),
		EventCount: testutils.Ptr(int32(3)),
	}
	require.NoError(t, st.Events().Insert(ctx, ev))

	page, err := st.Events().SelectPage(ctx, domain.PageRequest{PageNo: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)

	got := page.Records[0]
	assert.Equal(t, `{"a":1}`, got.Detail.Text())
	assert.Equal(t, `[1,2]`, got.ActionInfo.Text())
	assert.True(t, got.Custom.IsZero())
	assert.Equal(t, int32(3), *got.EventCount)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"detail":"{\"a\":1}"`)
	assert.Contains(t, string(body), `"custom":null`)
}

func TestEventInsertDuplicateIsDBError(t *testing.T) {
	st, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.Events().Insert(ctx, &domain.Event{ID: "dup"}))
	err := st.Events().Insert(ctx, &domain.Event{ID: "dup"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDB))
}

func TestEventSelectPage(t *testing.T) {
	st, _ := newStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		ev := &domain.Event{ID: fmt.Sprintf("e-%02d", i), Time: testutils.Ptr(int64(i))}
		require.NoError(t, st.Events().Insert(ctx, ev))
	}

	tests := []struct {
		name     string
		req      domain.PageRequest
		records  int
		pageNo   int
		pageSize int
		pages    int64
		firstID  string
	}{
		{name: "first page", req: domain.PageRequest{PageNo: 1, PageSize: 10}, records: 10, pageNo: 1, pageSize: 10, pages: 3, firstID: "e-24"},
		{name: "last partial page", req: domain.PageRequest{PageNo: 3, PageSize: 10}, records: 5, pageNo: 3, pageSize: 10, pages: 3, firstID: "e-04"},
		{name: "beyond last page", req: domain.PageRequest{PageNo: 4, PageSize: 10}, records: 0, pageNo: 4, pageSize: 10, pages: 3},
		{name: "huge page number", req: domain.PageRequest{PageNo: 1_000_000_000_000_000_000, PageSize: 10}, records: 0, pageNo: 1_000_000_000_000_000_000, pageSize: 10, pages: 3},
		{name: "max int page number", req: domain.PageRequest{PageNo: math.MaxInt, PageSize: domain.MaxPageSize}, records: 0, pageNo: math.MaxInt, pageSize: domain.MaxPageSize, pages: 1},
		{name: "defaults", req: domain.PageRequest{}, records: 10, pageNo: 1, pageSize: domain.DefaultPageSize, pages: 3, firstID: "e-24"},
		{name: "size capped", req: domain.PageRequest{PageNo: 1, PageSize: 1000}, records: 25, pageNo: 1, pageSize: domain.MaxPageSize, pages: 1, firstID: "e-24"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := st.Events().SelectPage(ctx, tc.req)
			require.NoError(t, err)
			assert.Equal(t, int64(25), page.Total)
			assert.Len(t, page.Records, tc.records)
			assert.NotNil(t, page.Records)
			assert.Equal(t, tc.pageNo, page.PageNo)
			assert.Equal(t, tc.pageSize, page.PageSize)
			assert.Equal(t, tc.pages, page.Pages)
			if tc.firstID != "" {
				assert.Equal(t, tc.firstID, page.Records[0].ID)
			}
		})
	}
}
