// Package encounters persists encounter turn state between requests
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/rpg-phases/internal/repositories/encounters Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/tracker"
)

// Repository defines the storage interface for encounters
type Repository interface {
	// Save stores an encounter, replacing any previous version
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves an encounter by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update replaces the tracker state of an existing encounter
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete removes an encounter
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// EncounterData represents the persistent state of an encounter
type EncounterData struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Tracker   *tracker.Snapshot `json:"tracker"`
}

// SaveInput defines the request for saving an encounter
type SaveInput struct {
	Data *EncounterData
}

// SaveOutput defines the response for saving an encounter
type SaveOutput struct {
	Success bool
}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	EncounterID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Data *EncounterData
}

// UpdateInput defines the request for updating an encounter
type UpdateInput struct {
	EncounterID string
	Tracker     *tracker.Snapshot
	UpdatedAt   time.Time
}

// UpdateOutput defines the response for updating an encounter
type UpdateOutput struct {
	Success bool
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	EncounterID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct {
	Success bool
}

func validateSave(input *SaveInput) error {
	if input == nil || input.Data == nil {
		return errors.InvalidArgument("encounter data is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", input.Data.ID, vb)
	if input.Data.Tracker == nil {
		vb.RequiredField("Tracker")
	}
	return vb.Build()
}

func validateUpdate(input *UpdateInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EncounterID", input.EncounterID, vb)
	if input.Tracker == nil {
		vb.RequiredField("Tracker")
	}
	return vb.Build()
}

func notFound(id string) error {
	return errors.NotFoundf("encounter %s not found", id).WithMeta("encounter_id", id)
}
