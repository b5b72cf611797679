package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/guesthouse/config"
	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockLost means the lock expired and was taken by another writer before release.
var ErrLockLost = errors.New("calendar lock no longer held")

// releaseLockScript deletes the lock only while it still carries the caller's token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client      *redis.Client
	snapshotTTL time.Duration
	newToken    func() string
}

func NewRedisCache(cfg config.RedisConfig, snapshotTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		snapshotTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, snapshotTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, snapshotTTL: snapshotTTL, newToken: uuid.NewString}
}

// GetBookings returns the cached snapshot of an owner's bookings, or nil on a
// miss, together with the snapshot version it looked under. A snapshot read
// from the database after a miss must be stored with that version.
func (c *RedisCache) GetBookings(ctx context.Context, ownerID string) ([]domain.Booking, int64, error) {
	version, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, bookingsKey(ownerID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, version, err
	}

	bookings := make([]domain.Booking, 0)
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, version, err
	}
	return bookings, version, nil
}

// SetBookings stores a snapshot under version. If a write invalidated the
// cache in the meantime, readers have moved to a newer version and never see it.
func (c *RedisCache) SetBookings(ctx context.Context, ownerID string, version int64, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingsKey(ownerID, version), payload, c.snapshotTTL).Err()
}

// InvalidateBookings moves the owner to a new snapshot version. Old snapshots
// expire with their TTL.
func (c *RedisCache) InvalidateBookings(ctx context.Context, ownerID string) error {
	return c.client.Incr(ctx, versionKey(ownerID)).Err()
}

// AcquireOwnerLock takes the write lock of one owner's calendar so that a
// conflict check and the write that follows it are not interleaved with
// another writer. The returned token is needed to release it.
func (c *RedisCache) AcquireOwnerLock(ctx context.Context, ownerID string, ttl time.Duration) (string, bool, error) {
	token := c.newToken()
	ok, err := c.client.SetNX(ctx, ownerLockKey(ownerID), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (c *RedisCache) ReleaseOwnerLock(ctx context.Context, ownerID, token string) error {
	deleted, err := releaseLockScript.Run(ctx, c.client, []string{ownerLockKey(ownerID)}, token).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockLost
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func bookingsKey(ownerID string, version int64) string {
	return fmt.Sprintf("cache:bookings:%s:v%d", ownerKey(ownerID), version)
}

func versionKey(ownerID string) string {
	return fmt.Sprintf("cache:bookings:%s:version", ownerKey(ownerID))
}

func ownerLockKey(ownerID string) string {
	return fmt.Sprintf("lock:bookings:%s", ownerKey(ownerID))
}

func ownerKey(ownerID string) string {
	if ownerID == "" {
		return "_default"
	}
	return ownerID
}
