package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gameapi-e2e/internal/model"
	"github.com/mcoot/gameapi-e2e/internal/storage"
)

// Storage is a Redis-backed fixture ledger. It lets a sweep from one machine
// clean up fixtures leaked by a crashed run on another.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveFixture(ctx context.Context, fixture *model.Fixture) error {
	data, err := json.Marshal(fixture)
	if err != nil {
		return err
	}

	key := fixtureKey(fixture.Kind, fixture.ID)

	// entry and both indexes in one round trip
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.FixtureTTL)
	pipe.SAdd(ctx, fixturesIndexKey(), key)
	if fixture.RunID != "" {
		runKey := runIndexKey(fixture.RunID)
		pipe.SAdd(ctx, runKey, key)
		if s.cfg.FixtureTTL > 0 {
			pipe.Expire(ctx, runKey, s.cfg.FixtureTTL)
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetFixture(ctx context.Context, kind model.FixtureKind, id string) (*model.Fixture, error) {
	data, err := s.client.Get(ctx, fixtureKey(kind, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrFixtureNotFound
		}
		return nil, err
	}

	var fixture model.Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (s *Storage) DeleteFixture(ctx context.Context, kind model.FixtureKind, id string) error {
	fixture, err := s.GetFixture(ctx, kind, id)
	if err != nil && !errors.Is(err, model.ErrFixtureNotFound) {
		return err
	}

	key := fixtureKey(kind, id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, fixturesIndexKey(), key)
	if fixture != nil && fixture.RunID != "" {
		pipe.SRem(ctx, runIndexKey(fixture.RunID), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListFixtures(ctx context.Context) ([]*model.Fixture, error) {
	return s.listIndex(ctx, fixturesIndexKey())
}

func (s *Storage) ListFixturesForRun(ctx context.Context, runID string) ([]*model.Fixture, error) {
	return s.listIndex(ctx, runIndexKey(runID))
}

func (s *Storage) listIndex(ctx context.Context, indexKey string) ([]*model.Fixture, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.Fixture{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	fixtures := make([]*model.Fixture, 0, len(values))
	var expired []any
	for i, val := range values {
		if val == nil {
			expired = append(expired, keys[i])
			continue
		}
		str, ok := val.(string)
		if !ok {
			continue
		}
		var fixture model.Fixture
		if err := json.Unmarshal([]byte(str), &fixture); err != nil {
			continue
		}
		fixtures = append(fixtures, &fixture)
	}

	// entries past their TTL leave stale index members behind
	if len(expired) > 0 {
		_ = s.client.SRem(ctx, indexKey, expired...).Err()
	}

	sort.SliceStable(fixtures, func(i, j int) bool {
		if fixtures[i].CreatedAt.Equal(fixtures[j].CreatedAt) {
			return fixtures[i].ID < fixtures[j].ID
		}
		return fixtures[i].CreatedAt.Before(fixtures[j].CreatedAt)
	})
	return fixtures, nil
}
