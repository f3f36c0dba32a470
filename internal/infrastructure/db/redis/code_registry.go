package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/infrastructure/codes"
)

// Keys live past their logical deadline for this long so a late check can
// still report "expired" rather than "not found"; Redis TTL then evicts.
const expiryGrace = time.Hour

// checkScript performs the read-increment-compare-delete sequence atomically
// server-side. Two concurrent guesses for the same code id are serialized by
// Redis's single-threaded execution.
//
// KEYS[1] record key, ARGV[1] supplied code, ARGV[2] max attempts,
// ARGV[3] current unix time.
var checkScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return {"not_found"}
end
local exp = tonumber(redis.call("HGET", KEYS[1], "expires_at"))
if tonumber(ARGV[3]) > exp then
	redis.call("DEL", KEYS[1])
	return {"expired"}
end
local max = tonumber(ARGV[2])
local attempts = tonumber(redis.call("HGET", KEYS[1], "attempts"))
if attempts >= max then
	redis.call("DEL", KEYS[1])
	return {"too_many"}
end
attempts = attempts + 1
redis.call("HSET", KEYS[1], "attempts", attempts)
if redis.call("HGET", KEYS[1], "code") ~= ARGV[1] then
	return {"incorrect", tostring(max - attempts)}
end
local account = redis.call("HGET", KEYS[1], "account_id")
redis.call("DEL", KEYS[1])
return {"success", account}
`)

// CodeRegistry is the Redis-backed verification-code store for multi-instance
// deployments. Records are hashes under vcode:<id>; Redis TTL handles eviction
// so Sweep is a no-op.
type CodeRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeRegistry wraps client. A non-positive ttl falls back to the
// registry default.
func NewCodeRegistry(client *redis.Client, ttl time.Duration) *CodeRegistry {
	if ttl <= 0 {
		ttl = codes.DefaultTTL
	}
	return &CodeRegistry{client: client, ttl: ttl}
}

func (r *CodeRegistry) key(codeID string) string {
	return "vcode:" + codeID
}

// Issue stores a fresh 6-digit code under a new opaque code id.
func (r *CodeRegistry) Issue(ctx context.Context, accountID, email string) (string, string, error) {
	code, err := codes.GenerateCode()
	if err != nil {
		return "", "", err
	}

	codeID := uuid.NewString()
	key := r.key(codeID)
	expiresAt := time.Now().UTC().Add(r.ttl)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"account_id": accountID,
		"email":      email,
		"code":       code,
		"attempts":   0,
		"expires_at": expiresAt.Unix(),
	})
	pipe.Expire(ctx, key, r.ttl+expiryGrace)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", "", fmt.Errorf("store verification code: %w", err)
	}

	return codeID, code, nil
}

// Check runs the atomic verification script and maps its reply.
func (r *CodeRegistry) Check(ctx context.Context, codeID, supplied string) (ports.CheckResult, error) {
	raw, err := checkScript.Run(ctx, r.client,
		[]string{r.key(codeID)},
		supplied, codes.MaxAttempts, time.Now().UTC().Unix(),
	).Slice()
	if err != nil {
		return ports.CheckResult{}, fmt.Errorf("check verification code: %w", err)
	}
	return parseCheckReply(raw)
}

// parseCheckReply maps the script's reply array onto a CheckResult. A reply
// that does not match the script's contract is an error, not a guess.
func parseCheckReply(raw []interface{}) (ports.CheckResult, error) {
	if len(raw) == 0 {
		return ports.CheckResult{}, fmt.Errorf("empty check reply")
	}

	status, _ := raw[0].(string)
	switch status {
	case "success":
		if len(raw) < 2 {
			return ports.CheckResult{}, fmt.Errorf("check reply %q missing account id", status)
		}
		accountID, _ := raw[1].(string)
		return ports.CheckResult{Status: ports.CheckSuccess, AccountID: accountID}, nil
	case "incorrect":
		if len(raw) < 2 {
			return ports.CheckResult{}, fmt.Errorf("check reply %q missing attempt count", status)
		}
		s, _ := raw[1].(string)
		remaining, err := strconv.Atoi(s)
		if err != nil {
			return ports.CheckResult{}, fmt.Errorf("parse remaining attempts %q: %w", s, err)
		}
		return ports.CheckResult{Status: ports.CheckIncorrect, Remaining: remaining}, nil
	case "expired":
		return ports.CheckResult{Status: ports.CheckExpired}, nil
	case "too_many":
		return ports.CheckResult{Status: ports.CheckTooManyAttempts}, nil
	case "not_found":
		return ports.CheckResult{Status: ports.CheckNotFound}, nil
	default:
		return ports.CheckResult{}, fmt.Errorf("unknown check reply status %q", status)
	}
}

// Revoke discards a live record. Unknown ids are a no-op.
func (r *CodeRegistry) Revoke(ctx context.Context, codeID string) error {
	return r.client.Del(ctx, r.key(codeID)).Err()
}

// Sweep is a no-op: Redis key TTLs evict expired records.
func (r *CodeRegistry) Sweep(context.Context) (int, error) {
	return 0, nil
}
