package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketKey(t *testing.T) {
	key := bucketKey("192.168.1.100")

	assert.Equal(t, key, bucketKey("192.168.1.100"))
	assert.NotEqual(t, bucketKey("10.0.0.1"), bucketKey("10.0.0.2"))
	assert.True(t, strings.HasPrefix(key, bucketKeyPrefix))
	assert.Len(t, strings.TrimPrefix(key, bucketKeyPrefix), 16)
	assert.NotContains(t, key, "192.168.1.100")
}

func unreachableCache(t *testing.T) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return &Cache{client: client}
}

func TestCheckIPRateLimit_RedisDown(t *testing.T) {
	c := unreachableCache(t)

	result, err := c.CheckIPRateLimit(context.Background(), "10.0.0.1", 5, 10)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestCheckIPRateLimit_InvalidBucket(t *testing.T) {
	c := unreachableCache(t)

	_, err := c.CheckIPRateLimit(context.Background(), "10.0.0.1", 0, 10)
	assert.ErrorContains(t, err, "invalid bucket")
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "not a url")
	assert.Error(t, err)
}
