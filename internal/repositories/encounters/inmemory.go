package encounters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Values
// are kept serialized so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Save stores an encounter
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal encounter")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Data.ID] = raw

	return &SaveOutput{Success: true}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	r.mu.RLock()
	raw, exists := r.store[input.EncounterID]
	r.mu.RUnlock()

	if !exists {
		return nil, notFound(input.EncounterID)
	}

	var data EncounterData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal encounter")
	}

	return &GetOutput{Data: &data}, nil
}

// Update replaces the tracker state of an existing encounter
func (r *InMemoryRepository) Update(_ context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	raw, exists := r.store[input.EncounterID]
	if !exists {
		return nil, notFound(input.EncounterID)
	}

	var data EncounterData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal encounter")
	}
	data.Tracker = input.Tracker
	data.UpdatedAt = input.UpdatedAt

	updated, err := json.Marshal(&data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal encounter")
	}
	r.store[input.EncounterID] = updated

	return &UpdateOutput{Success: true}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.EncounterID]; !exists {
		return nil, notFound(input.EncounterID)
	}

	delete(r.store, input.EncounterID)

	return &DeleteOutput{Success: true}, nil
}
