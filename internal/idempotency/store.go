package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/utils"
	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix     = "idem:funding:create:"
	pendingPrefix = "pending:"
	donePrefix    = "done:"
)

// ErrInFlight means another request holding the same key has not finished yet.
var ErrInFlight = fmt.Errorf("%w: request with this Idempotency-Key is still in progress", apperrors.ErrDuplicate)

// ErrReservationLost means the pending marker expired and the key now belongs to
// another request, or is gone. Complete and Release leave such a key untouched.
var ErrReservationLost = errors.New("idempotency reservation no longer held")

// Reservation is the outcome of Reserve. When Replay is set the original request
// already completed and FundingRef identifies its result. Token identifies the
// holder of a pending reservation.
type Reservation struct {
	Key        string
	Token      string
	Replay     bool
	FundingRef string
}

// Store guards CreateFunding against duplicate submissions.
type Store interface {
	Reserve(ctx context.Context, scope, key string) (*Reservation, error)
	Complete(ctx context.Context, r *Reservation, fundingRef string) error
	Release(ctx context.Context, r *Reservation) error
}

// completeScript swaps the holder's pending marker for the result.
var completeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`)

// releaseScript deletes the key only while the holder's pending marker is in place.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps reservations in Redis with SETNX. Pending markers live for
// pendingTTL so a crashed request frees its key quickly; results live for ttl.
type RedisStore struct {
	client     redis.Cmdable
	ttl        time.Duration
	pendingTTL time.Duration
	newToken   func() (string, error)
}

// NewRedisStore creates a Redis-backed idempotency store.
func NewRedisStore(client redis.Cmdable, ttl, pendingTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		ttl:        ttl,
		pendingTTL: pendingTTL,
		newToken: func() (string, error) {
			return utils.GenerateSecureToken(16)
		},
	}
}

var _ Store = (*RedisStore)(nil)

func redisKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

// Reserve claims key for scope. A completed key replays; a pending one is ErrInFlight.
func (s *RedisStore) Reserve(ctx context.Context, scope, key string) (*Reservation, error) {
	if strings.TrimSpace(key) == "" || len(key) > 255 {
		return nil, apperrors.NewValidationError("Idempotency-Key must be 1 to 255 characters", nil)
	}
	token, err := s.newToken()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to generate idempotency token", err)
	}
	rk := redisKey(scope, key)

	// Two passes cover a key that expires between SETNX and GET.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, rk, pendingPrefix+token, s.pendingTTL).Result()
		if err != nil {
			return nil, apperrors.NewStorageError("failed to reserve idempotency key", err)
		}
		if ok {
			return &Reservation{Key: rk, Token: token}, nil
		}

		val, err := s.client.Get(ctx, rk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, apperrors.NewStorageError("failed to read idempotency key", err)
		}
		if ref, done := strings.CutPrefix(val, donePrefix); done {
			return &Reservation{Key: rk, Replay: true, FundingRef: ref}, nil
		}
		return nil, ErrInFlight
	}
	return nil, ErrInFlight
}

// Complete records the funding_ref produced under the reservation, provided the
// reservation is still held.
func (s *RedisStore) Complete(ctx context.Context, r *Reservation, fundingRef string) error {
	n, err := completeScript.Run(ctx, s.client, []string{r.Key},
		pendingPrefix+r.Token, donePrefix+fundingRef, s.ttl.Milliseconds()).Int()
	if err != nil {
		return apperrors.NewStorageError("failed to complete idempotency key", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrReservationLost, r.Key)
	}
	return nil
}

// Release drops a reservation whose request failed so the client may retry.
func (s *RedisStore) Release(ctx context.Context, r *Reservation) error {
	n, err := releaseScript.Run(ctx, s.client, []string{r.Key}, pendingPrefix+r.Token).Int()
	if err != nil {
		return apperrors.NewStorageError("failed to release idempotency key", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrReservationLost, r.Key)
	}
	return nil
}
