package dicesession

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/clock"
)

// InMemoryRepository keeps roll logs in process memory. It is used when no
// Redis endpoint is configured.
type InMemoryRepository struct {
	mu    sync.Mutex
	clock clock.Clock
	logs  map[string]*DiceSession
}

// NewInMemoryRepository creates an in-memory roll log repository. A nil
// clock uses the wall clock.
func NewInMemoryRepository(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		logs:  make(map[string]*DiceSession),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Append adds rolls to a log and restarts its TTL
func (r *InMemoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
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
	key := sessionKey(input.EntityID, input.Context)

	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.live(key)
	if log == nil {
		log = &DiceSession{EntityID: input.EntityID, Context: input.Context}
		r.logs[key] = log
	}
	for _, roll := range input.Rolls {
		if roll.RolledAt.IsZero() {
			roll.RolledAt = now
		}
		roll.Dice = slices.Clone(roll.Dice)
		log.Rolls = append(log.Rolls, roll)
	}
	log.ExpiresAt = now.Add(ttl)

	return &AppendOutput{RollCount: len(log.Rolls), ExpiresAt: log.ExpiresAt}, nil
}

// Get retrieves a copy of a log
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.live(sessionKey(input.EntityID, input.Context))
	if log == nil {
		return nil, notFound(input.EntityID, input.Context)
	}

	out := *log
	out.Rolls = make([]DiceRoll, len(log.Rolls))
	for i, roll := range log.Rolls {
		roll.Dice = slices.Clone(roll.Dice)
		out.Rolls[i] = roll
	}
	return &GetOutput{Session: &out}, nil
}

// Delete removes a log
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := sessionKey(input.EntityID, input.Context)

	r.mu.Lock()
	defer r.mu.Unlock()

	var rollsDeleted int32
	if log := r.live(key); log != nil {
		// nolint:gosec // roll count is always small
		rollsDeleted = int32(len(log.Rolls))
	}
	delete(r.logs, key)

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

// live returns the log under key, dropping it once expired. Callers hold mu.
func (r *InMemoryRepository) live(key string) *DiceSession {
	log, ok := r.logs[key]
	if !ok {
		return nil
	}
	if r.clock.Now().After(log.ExpiresAt) {
		delete(r.logs, key)
		return nil
	}
	return log
}
