package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLists(t *testing.T) (*Lists, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLists(client, 5*time.Minute), mr
}

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestLists_GetMiss(t *testing.T) {
	lists, _ := setupLists(t)

	var dest []item
	hit, err := lists.Get(context.Background(), "projects", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLists_SetThenGet(t *testing.T) {
	lists, _ := setupLists(t)
	ctx := context.Background()

	want := []item{{ID: 2, Title: "Beta"}, {ID: 1, Title: "Alpha"}}
	require.NoError(t, lists.Set(ctx, "projects", want))

	var got []item
	hit, err := lists.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestLists_TablesAreIndependent(t *testing.T) {
	lists, _ := setupLists(t)
	ctx := context.Background()

	require.NoError(t, lists.Set(ctx, "projects", []item{{ID: 1}}))

	var dest []item
	hit, err := lists.Get(ctx, "services", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLists_Invalidate(t *testing.T) {
	lists, _ := setupLists(t)
	ctx := context.Background()

	require.NoError(t, lists.Set(ctx, "projects", []item{{ID: 1}}))
	require.NoError(t, lists.Invalidate(ctx, "projects"))

	var dest []item
	hit, err := lists.Get(ctx, "projects", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	t.Run("invalidating an absent entry is fine", func(t *testing.T) {
		assert.NoError(t, lists.Invalidate(ctx, "projects"))
	})
}

func TestLists_EntryExpires(t *testing.T) {
	lists, mr := setupLists(t)
	ctx := context.Background()

	require.NoError(t, lists.Set(ctx, "projects", []item{{ID: 1}}))
	mr.FastForward(6 * time.Minute)

	var dest []item
	hit, err := lists.Get(ctx, "projects", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}
