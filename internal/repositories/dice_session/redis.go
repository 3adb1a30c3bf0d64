package dicesession

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-phases/internal/redis"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// redisRepository keeps each log as a Redis list with one JSON roll per
// element. Expiry lives on the key, so Redis drops idle logs on its own.
type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for roll logs
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append pushes the rolls and restarts the TTL in one transaction
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if len(input.Rolls) == 0 {
		return nil, errors.InvalidArgument("at least one roll is required")
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := r.clock.Now()

	entries := make([]any, len(input.Rolls))
	for i, roll := range input.Rolls {
		if roll.RolledAt.IsZero() {
			roll.RolledAt = now
		}
		data, err := json.Marshal(roll)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal roll %s", roll.RollID)
		}
		entries[i] = data
	}

	key := sessionKey(input.EntityID, input.Context)
	var push *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		push = pipe.RPush(ctx, key, entries...)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to append rolls")
	}

	return &AppendOutput{
		RollCount: int(push.Val()),
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Get reads the whole log with its remaining TTL
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := sessionKey(input.EntityID, input.Context)
	var (
		entries *redis.StringSliceCmd
		ttl     *redis.DurationCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		entries = pipe.LRange(ctx, key, 0, -1)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read rolls")
	}

	raw := entries.Val()
	if len(raw) == 0 {
		return nil, notFound(input.EntityID, input.Context)
	}

	session := &DiceSession{
		EntityID: input.EntityID,
		Context:  input.Context,
		Rolls:    make([]DiceRoll, len(raw)),
	}
	for i, entry := range raw {
		if err := json.Unmarshal([]byte(entry), &session.Rolls[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal roll %d", i)
		}
	}
	if remaining := ttl.Val(); remaining > 0 {
		session.ExpiresAt = r.clock.Now().Add(remaining)
	}

	return &GetOutput{Session: session}, nil
}

// Delete drops the log and reports how many rolls it held
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := sessionKey(input.EntityID, input.Context)
	var count *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.LLen(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete rolls")
	}

	return &DeleteOutput{
		// nolint:gosec // roll count is always small
		RollsDeleted: int32(count.Val()),
	}, nil
}
