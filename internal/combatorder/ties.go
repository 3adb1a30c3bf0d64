package combatorder

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

//go:generate mockgen -destination=mock/mock_tiebreaker.go -package=combatordermock github.com/KirkDiggler/rpg-phases/internal/combatorder TieBreaker

// TieBreaker assigns Initiative to combatants tied on Dexterity, usually by
// rolling dice. It returns the new Initiative keyed by combatant ID;
// combatants left out of the result stay unresolved.
type TieBreaker interface {
	BreakTies(ctx context.Context, tied []*Combatant) (map[string]int, error)
}

// TieBreakerFunc adapts a function to TieBreaker
type TieBreakerFunc func(ctx context.Context, tied []*Combatant) (map[string]int, error)

// BreakTies calls f
func (f TieBreakerFunc) BreakTies(ctx context.Context, tied []*Combatant) (map[string]int, error) {
	return f(ctx, tied)
}

// tieSet keeps tied combatants in discovery order
type tieSet struct {
	order []*Combatant
	seen  map[string]struct{}
}

func newTieSet() *tieSet {
	return &tieSet{seen: make(map[string]struct{})}
}

func (t *tieSet) add(c *Combatant) {
	if _, ok := t.seen[c.ID]; ok {
		return
	}
	t.seen[c.ID] = struct{}{}
	t.order = append(t.order, c)
}

func (t *tieSet) remove(id string) {
	if _, ok := t.seen[id]; !ok {
		return
	}
	delete(t.seen, id)
	for i, c := range t.order {
		if c.ID == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *tieSet) len() int {
	return len(t.order)
}

func (t *tieSet) clear() {
	t.order = nil
	t.seen = make(map[string]struct{})
}

// unresolved returns the tied combatants that have no Initiative yet
func (t *tieSet) unresolved() []*Combatant {
	var out []*Combatant
	for _, c := range t.order {
		if c.Initiative == nil {
			out = append(out, c)
		}
	}
	return out
}

// ResolveTies hands every tied combatant without an Initiative to the
// TieBreaker, applies the results and clears the tie set. Combatants that
// already hold an Initiative keep it. If the TieBreaker fails the tie set is
// left in place so the call can be retried.
func (o *CombatOrder) ResolveTies(ctx context.Context) error {
	unresolved := o.ties.unresolved()
	if len(unresolved) > 0 {
		slog.Debug("Breaking initiative ties",
			"tied_count", len(unresolved),
		)

		results, err := o.tieBreaker.BreakTies(ctx, unresolved)
		if err != nil {
			return errors.Wrap(err, "failed to break initiative ties")
		}

		for _, c := range unresolved {
			if v, ok := results[c.ID]; ok {
				c.SetInitiative(v)
			}
		}
	}

	o.ties.clear()
	o.commitFolded()
	return nil
}
