package reconcile

import (
	"errors"
	"testing"

	"content-studio-backend/internal/models"
)

type item struct {
	ID     string
	Name   string
	Intent models.Intent
}

func itemID(i item) string            { return i.ID }
func itemIntent(i item) models.Intent { return i.Intent }

func kinds(plan Plan[item]) []OpKind {
	out := make([]OpKind, len(plan.Ops))
	for i, op := range plan.Ops {
		out[i] = op.Kind
	}
	return out
}

func TestPlanExplicitMapsIntents(t *testing.T) {
	original := []item{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "second"},
	}
	submitted := []item{
		{ID: "a", Name: "first-renamed", Intent: models.IntentUpdate},
		{ID: "b", Intent: models.IntentRemove},
		{Name: "third", Intent: models.IntentCreate},
		{ID: "a", Name: "first"},
	}

	plan, err := PlanExplicit(original, submitted, itemID, itemIntent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []OpKind{OpUpdate, OpRemove, OpCreate, OpKeep}
	got := kinds(plan)
	if len(got) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("op %d: expected kind %v, got %v", i, want[i], got[i])
		}
	}

	if plan.Ops[0].Original == nil || plan.Ops[0].Original.Name != "first" {
		t.Fatalf("update op should carry the persisted original")
	}
	if plan.Ops[1].Original == nil || plan.Ops[1].Original.ID != "b" {
		t.Fatalf("remove op should carry the persisted original")
	}
}

func TestPlanExplicitRemoveOfUnknownIDIsDropped(t *testing.T) {
	submitted := []item{
		{ID: "ghost", Intent: models.IntentRemove},
		{Name: "new", Intent: models.IntentCreate},
	}

	plan, err := PlanExplicit(nil, submitted, itemID, itemIntent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Ops) != 1 || plan.Ops[0].Kind != OpCreate {
		t.Fatalf("remove of a never-persisted id should vanish from the plan, got %v", kinds(plan))
	}
}

func TestPlanExplicitUpdateOfUnknownIDFails(t *testing.T) {
	submitted := []item{{ID: "ghost", Intent: models.IntentUpdate}}

	_, err := PlanExplicit(nil, submitted, itemID, itemIntent)
	if err == nil {
		t.Fatalf("expected error for update of unknown id")
	}
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestPlanImplicitOrdersUpdatesBeforeCreates(t *testing.T) {
	original := []item{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
	}
	submitted := []item{
		{Name: "brand-new"},
		{ID: "c", Name: "moved up"},
		{ID: "a", Name: "still here"},
	}

	plan := PlanImplicit(original, submitted, itemID)

	want := []OpKind{OpUpdate, OpUpdate, OpCreate, OpRemove}
	got := kinds(plan)
	if len(got) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("op %d: expected kind %v, got %v", i, want[i], got[i])
		}
	}

	// Updates keep submission order.
	if plan.Ops[0].Submitted.ID != "c" || plan.Ops[1].Submitted.ID != "a" {
		t.Fatalf("updates should keep submission order, got %s then %s",
			plan.Ops[0].Submitted.ID, plan.Ops[1].Submitted.ID)
	}

	removed := plan.Removed()
	if len(removed) != 1 || removed[0].ID != "b" {
		t.Fatalf("expected original b to be removed, got %v", removed)
	}
}

func TestPlanImplicitEmptySubmissionRemovesEverything(t *testing.T) {
	original := []item{{ID: "a"}, {ID: "b"}}

	plan := PlanImplicit(original, nil, itemID)
	if len(plan.Removed()) != 2 {
		t.Fatalf("expected both originals removed, got %d", len(plan.Removed()))
	}
	if len(plan.Creates()) != 0 {
		t.Fatalf("expected no creates")
	}
}

func TestPlanImplicitResubmissionIsStable(t *testing.T) {
	original := []item{{ID: "a"}, {ID: "b"}}

	// Submitting the persisted state verbatim must produce no removals and no
	// creates, only in-place updates.
	plan := PlanImplicit(original, original, itemID)
	for _, op := range plan.Ops {
		if op.Kind != OpUpdate {
			t.Fatalf("resubmitting persisted state should only update, got %v", op.Kind)
		}
	}
}
