package encounters

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-phases/internal/redis"
)

// Key pattern: encounter:{id}
const encounterKeyPrefix = "encounter:"

// RedisConfig holds the dependencies for the Redis repository
type RedisConfig struct {
	Client redisclient.Client

	// TTL expires idle encounters; zero keeps them until deleted
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis backed encounter repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

// Save stores an encounter, refreshing its TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal encounter")
	}

	if err := r.client.Set(ctx, encounterKey(input.Data.ID), raw, r.ttl).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store encounter in Redis")
	}

	return &SaveOutput{Success: true}, nil
}

// Get retrieves an encounter by ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	data, err := r.get(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Data: data}, nil
}

// Update replaces the tracker state of an existing encounter
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	data, err := r.get(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	data.Tracker = input.Tracker
	data.UpdatedAt = input.UpdatedAt

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal encounter")
	}

	// XX so an encounter deleted in the meantime is not resurrected
	err = r.client.SetArgs(ctx, encounterKey(input.EncounterID), raw, redis.SetArgs{
		Mode: "XX",
		TTL:  r.ttl,
	}).Err()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(input.EncounterID)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update encounter in Redis")
	}

	return &UpdateOutput{Success: true}, nil
}

// Delete removes an encounter
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	deleted, err := r.client.Del(ctx, encounterKey(input.EncounterID)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete encounter from Redis")
	}
	if deleted == 0 {
		return nil, notFound(input.EncounterID)
	}

	return &DeleteOutput{Success: true}, nil
}

func (r *redisRepository) get(ctx context.Context, id string) (*EncounterData, error) {
	raw, err := r.client.Get(ctx, encounterKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get encounter from Redis")
	}

	var data EncounterData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal encounter")
	}
	return &data, nil
}

func encounterKey(id string) string {
	return encounterKeyPrefix + id
}
