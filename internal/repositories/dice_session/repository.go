// Package dicesession stores the dice rolled for an encounter so a table can
// audit how initiative ties were broken.
package dicesession

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session Repository

// DefaultTTL is used when rolls are appended without a TTL
const DefaultTTL = 4 * time.Hour

// Key pattern: dice_session:{entity_id}:{context}, a list of JSON rolls
const sessionKeyPrefix = "dice_session:"

// DiceSession is the roll log of one entity and context, oldest roll first
type DiceSession struct {
	// Entity that owns these rolls, an encounter ID
	EntityID string `json:"entity_id"`

	// Context groups related rolls (e.g. "initiative_ties")
	Context string `json:"context"`

	Rolls []DiceRoll `json:"rolls"`

	// ExpiresAt is when the log is dropped unless more rolls are appended
	ExpiresAt time.Time `json:"expires_at"`
}

// DiceRoll is one entry of the log
type DiceRoll struct {
	RollID string `json:"roll_id"`

	// Combatant the roll was made for
	CombatantID string `json:"combatant_id"`

	// Dice notation that was rolled (e.g. "3d6")
	Notation string `json:"notation"`

	// Individual dice values that were rolled
	Dice []int32 `json:"dice"`

	Total int32 `json:"total"`

	Description string `json:"description,omitempty"`

	// RolledAt is stamped by the repository when left zero
	RolledAt time.Time `json:"rolled_at"`
}

// AppendInput contains the rolls to add to a log
type AppendInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll

	// TTL restarts with every append, DefaultTTL when zero
	TTL time.Duration
}

// AppendOutput reports the log after the append
type AppendOutput struct {
	RollCount int
	ExpiresAt time.Time
}

// GetInput contains parameters for retrieving a roll log
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a roll log
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a roll log
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a roll log
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository stores append-only roll logs
type Repository interface {
	// Append adds rolls to the end of a log, creating it on first use. The
	// append is atomic so concurrent tie breaks never lose rolls.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves a whole log
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a log
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

func validateKey(entityID, context string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EntityID", entityID, vb)
	errors.ValidateRequired("Context", context, vb)
	return vb.Build()
}

func notFound(entityID, context string) error {
	return errors.NotFound("dice session not found").
		WithMeta("entity_id", entityID).
		WithMeta("context", context)
}

func sessionKey(entityID, context string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, entityID, context)
}
