package saved

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is the Redis key prefix for bookmark sets.
//
//	Key:    saved:<user id>
//	Type:   sorted set
//	Member: <listing id>
//	Score:  save time (unix millis)
const KeyPrefix = "saved:"

// LocalStore keeps bookmarks in Redis, used when the database has no
// saved_items table.
type LocalStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewLocalStore(client *redis.Client) *LocalStore {
	return &LocalStore{client: client, now: time.Now}
}

func key(userID uuid.UUID) string {
	return KeyPrefix + userID.String()
}

func (s *LocalStore) Save(ctx context.Context, userID, listingID uuid.UUID) error {
	err := s.client.ZAddNX(ctx, key(userID), redis.Z{
		Score:  float64(s.now().UnixMilli()),
		Member: listingID.String(),
	}).Err()
	if err != nil {
		return fmt.Errorf("saved: zadd: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := s.client.ZRem(ctx, key(userID), listingID.String()).Err(); err != nil {
		return fmt.Errorf("saved: zrem: %w", err)
	}
	return nil
}

func (s *LocalStore) IsSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	_, err := s.client.ZScore(ctx, key(userID), listingID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("saved: zscore: %w", err)
	}
	return true, nil
}

func (s *LocalStore) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	members, err := s.client.ZRevRange(ctx, key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("saved: zrevrange: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue // foreign member, ignore
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *LocalStore) Backend() string { return BackendLocal }
