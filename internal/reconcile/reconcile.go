// Package reconcile computes the final form of a nested item collection and
// the side effects it implies, from the persisted original and the client
// submission. The two diff policies share one planner shape: the explicit
// policy branches on a per-item lifecycle intent tag, the implicit policy
// infers intent from id presence. Planning is pure; callers apply asset and
// persistence effects from the resulting ops.
package reconcile

import (
	"errors"
	"fmt"

	"content-studio-backend/internal/models"
)

// ErrItemNotFound is raised when an update intent names an id that was never
// persisted.
var ErrItemNotFound = errors.New("item not found")

type OpKind int

const (
	// OpKeep passes the submitted item through unchanged.
	OpKeep OpKind = iota
	// OpCreate emits the item with a freshly generated id.
	OpCreate
	// OpUpdate merges the submitted item onto the original located by id.
	OpUpdate
	// OpRemove drops the original and schedules its asset cleanup.
	OpRemove
)

// Op is a single planned action. Original is nil for creates and keeps of
// never-persisted items; Submitted is the zero value for implicit removals.
type Op[T any] struct {
	Kind      OpKind
	Submitted T
	Original  *T
}

// Plan is an ordered list of ops. Non-remove ops appear in submission order;
// removals keep their submission position under the explicit policy and are
// appended at the end under the implicit one.
type Plan[T any] struct {
	Ops []Op[T]
}

// Removed returns the originals scheduled for removal.
func (p Plan[T]) Removed() []T {
	var out []T
	for _, op := range p.Ops {
		if op.Kind == OpRemove && op.Original != nil {
			out = append(out, *op.Original)
		}
	}
	return out
}

// Creates returns the submitted items scheduled for creation.
func (p Plan[T]) Creates() []T {
	var out []T
	for _, op := range p.Ops {
		if op.Kind == OpCreate {
			out = append(out, op.Submitted)
		}
	}
	return out
}

// PlanExplicit applies the intent-tag policy used for the nested items of a
// section (cards, attachments, grid layouts, gallery items). Every submitted
// item carries its own lifecycle intent; an update must resolve to an
// existing original.
func PlanExplicit[T any](original, submitted []T, id func(T) string, intent func(T) models.Intent) (Plan[T], error) {
	index := indexByID(original, id)

	plan := Plan[T]{Ops: make([]Op[T], 0, len(submitted))}
	for _, item := range submitted {
		switch intent(item) {
		case models.IntentRemove:
			orig, ok := index[id(item)]
			if !ok {
				// Nothing persisted under this id; dropping it needs no cleanup.
				continue
			}
			plan.Ops = append(plan.Ops, Op[T]{Kind: OpRemove, Submitted: item, Original: orig})

		case models.IntentUpdate:
			orig, ok := index[id(item)]
			if !ok {
				return Plan[T]{}, fmt.Errorf("%w: item with ID %s", ErrItemNotFound, id(item))
			}
			plan.Ops = append(plan.Ops, Op[T]{Kind: OpUpdate, Submitted: item, Original: orig})

		case models.IntentCreate:
			plan.Ops = append(plan.Ops, Op[T]{Kind: OpCreate, Submitted: item})

		default:
			// No intent: pass through unchanged. Correct only when the item
			// carries no pending asset changes, which holds for re-submitted
			// persisted state.
			plan.Ops = append(plan.Ops, Op[T]{Kind: OpKeep, Submitted: item, Original: index[id(item)]})
		}
	}

	return plan, nil
}

// PlanImplicit applies the id-presence policy used for an entity's top-level
// section list: originals missing from the submission are removed, submitted
// items update when they carry a known id and create otherwise. Updates keep
// submission order and precede creates in the final list.
func PlanImplicit[T any](original, submitted []T, id func(T) string) Plan[T] {
	index := indexByID(original, id)

	submittedIDs := make(map[string]struct{}, len(submitted))
	for _, item := range submitted {
		if itemID := id(item); itemID != "" {
			submittedIDs[itemID] = struct{}{}
		}
	}

	var updates, creates []Op[T]
	for _, item := range submitted {
		if orig, ok := index[id(item)]; ok {
			updates = append(updates, Op[T]{Kind: OpUpdate, Submitted: item, Original: orig})
		} else {
			creates = append(creates, Op[T]{Kind: OpCreate, Submitted: item})
		}
	}

	plan := Plan[T]{Ops: append(updates, creates...)}

	for i := range original {
		if _, ok := submittedIDs[id(original[i])]; !ok {
			plan.Ops = append(plan.Ops, Op[T]{Kind: OpRemove, Original: &original[i]})
		}
	}

	return plan
}

func indexByID[T any](items []T, id func(T) string) map[string]*T {
	index := make(map[string]*T, len(items))
	for i := range items {
		if itemID := id(items[i]); itemID != "" {
			index[itemID] = &items[i]
		}
	}
	return index
}
