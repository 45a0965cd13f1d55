package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const bucketKeyPrefix = "gqlblog:bucket:"

type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// takeToken works in milliseconds so sub-second refill is not lost.
// ARGV: refill per second, capacity, now (ms). Returns allowed, tokens left
// and the wait in ms until the next token.
var takeToken = redis.NewScript(`
local refill = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end

tokens = math.min(capacity, tokens + (now - ts) * refill / 1000)

local allowed = 0
local wait = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) * 1000 / refill)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(capacity * 1000 / refill) + 1000)

return {allowed, math.floor(tokens), wait}
`)

// CheckIPRateLimit takes one token from the bucket kept for ip. The bucket
// holds burst tokens and refills at ratePerSecond.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	if ratePerSecond <= 0 || burst <= 0 {
		return nil, fmt.Errorf("invalid bucket: rate %d, burst %d", ratePerSecond, burst)
	}

	reply, err := takeToken.Run(ctx, c.client, []string{bucketKey(ip)},
		ratePerSecond, burst, time.Now().UnixMilli(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("token bucket script failed: %w", err)
	}
	if len(reply) != 3 {
		return nil, fmt.Errorf("token bucket script returned %d values", len(reply))
	}

	return &RateLimitResult{
		Allowed:    reply[0] == 1,
		Remaining:  reply[1],
		RetryAfter: time.Duration(reply[2]) * time.Millisecond,
	}, nil
}

// bucketKey hashes the address so Redis never stores client IPs.
func bucketKey(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return bucketKeyPrefix + hex.EncodeToString(sum[:8])
}
