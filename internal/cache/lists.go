package cache

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/enbat/horizon-server-go/internal/redis"
)

// Lists caches full list responses per table. The consistency model is
// refetch-after-write: every mutation invalidates the table's entry and the
// next read repopulates it from the source, so a hit is always a faithful
// copy of some complete past read, never a partial merge.
type Lists struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewLists(client *goredis.Client, ttl time.Duration) *Lists {
	return &Lists{client: client, ttl: ttl}
}

// Get unmarshals the cached list for table into dest. A miss or a cache
// failure returns false; callers fall through to the source either way.
func (c *Lists) Get(ctx context.Context, table string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, redis.ListCacheKey(table)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Lists) Set(ctx context.Context, table string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redis.ListCacheKey(table), raw, c.ttl).Err()
}

func (c *Lists) Invalidate(ctx context.Context, table string) error {
	return c.client.Del(ctx, redis.ListCacheKey(table)).Err()
}
