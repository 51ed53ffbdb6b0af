package assets

import (
	"context"
	"strings"
	"testing"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/storage"
)

const inlinePNG = "data:image/png;base64,aGVsbG8="

func newTestAdapter() (*Adapter, *storage.MemoryStore) {
	store := storage.NewMemoryStore("media")
	return NewAdapter(store), store
}

func TestStageUploadsInlinePayload(t *testing.T) {
	adapter, store := newTestAdapter()

	slot, err := adapter.Stage(context.Background(), models.AssetSlot{URL: inlinePNG}, "sections/cards", "owner")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if !strings.Contains(slot.URL, "media/sections/cards/owner/") {
		t.Fatalf("resolved URL %q missing expected key path", slot.URL)
	}
	if !store.Has(slot.URL) {
		t.Fatalf("staged object should exist in the store")
	}
}

func TestStageKeepsRemoteReference(t *testing.T) {
	adapter, store := newTestAdapter()

	slot, err := adapter.Stage(context.Background(), models.AssetSlot{URL: "https://cdn.example.com/x.png"}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if slot.URL != "https://cdn.example.com/x.png" {
		t.Fatalf("remote reference should pass through, got %q", slot.URL)
	}
	if store.Len() != 0 {
		t.Fatalf("remote reference must not touch the store")
	}
}

func TestStageEmptyStaysEmpty(t *testing.T) {
	adapter, store := newTestAdapter()

	slot, err := adapter.Stage(context.Background(), models.AssetSlot{URL: "   "}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if !slot.IsEmpty() {
		t.Fatalf("expected empty slot, got %+v", slot)
	}
	if store.Len() != 0 {
		t.Fatalf("empty slot must not touch the store")
	}
}

func TestStageDetailImageWinsOverRawURL(t *testing.T) {
	adapter, _ := newTestAdapter()

	slot, err := adapter.Stage(context.Background(), models.AssetSlot{
		URL:    "https://cdn.example.com/raw.png",
		Detail: &models.AssetDetail{Alt: "alt text", Image: inlinePNG},
	}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if !strings.Contains(slot.URL, "media/p/o/") {
		t.Fatalf("detail image should win and be uploaded, got %q", slot.URL)
	}
	if slot.Detail == nil || slot.Detail.Alt != "alt text" {
		t.Fatalf("alt metadata should survive resolution, got %+v", slot.Detail)
	}
	if slot.Detail.Image != "" {
		t.Fatalf("inline payload must be stripped from the persisted detail")
	}
}

func TestApplyReplacesOldAsset(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	original, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	replaced, err := adapter.Apply(ctx, original, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if replaced.URL == original.URL {
		t.Fatalf("replacement should mint a fresh URL")
	}
	if store.Has(original.URL) {
		t.Fatalf("old asset should be deleted on replacement")
	}
	if !store.Has(replaced.URL) {
		t.Fatalf("new asset should exist after replacement")
	}
}

func TestApplyEmptyClearsSlotAndReleasesAsset(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	original, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	cleared, err := adapter.Apply(ctx, original, models.AssetSlot{}, "p", "o")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !cleared.IsEmpty() {
		t.Fatalf("expected cleared slot, got %+v", cleared)
	}
	if store.Has(original.URL) {
		t.Fatalf("old asset should be released when the slot is cleared")
	}
}

func TestApplyKeepsUnchangedRemoteReference(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	original, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	kept, err := adapter.Apply(ctx, original, models.AssetSlot{URL: original.URL}, "p", "o")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if kept.URL != original.URL {
		t.Fatalf("resubmitted URL should be kept, got %q", kept.URL)
	}
	if !store.Has(original.URL) {
		t.Fatalf("asset must survive a no-op resubmission")
	}
}

func TestReleaseIsBestEffort(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	slot, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	// Foreign and empty slots are skipped without complaint.
	adapter.Release(ctx, slot, models.AssetSlot{URL: "https://elsewhere.example.com/y.png"}, models.AssetSlot{})
	if store.Has(slot.URL) {
		t.Fatalf("managed asset should be deleted")
	}
}

func TestReleaseIgnoresForeignURLWithManagedPath(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	slot, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "o")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	// A remote reference on another host may carry the same key path; it must
	// never be resolved against the local store.
	foreign := "https://cdn.example.com/" + store.KeyFromURL(slot.URL)
	adapter.Release(ctx, models.AssetSlot{URL: foreign})
	if !store.Has(slot.URL) {
		t.Fatalf("releasing a foreign URL must not delete the managed object")
	}
}

func TestDuplicateCopiesAsset(t *testing.T) {
	adapter, store := newTestAdapter()
	ctx := context.Background()

	source, err := adapter.Stage(ctx, models.AssetSlot{URL: inlinePNG}, "p", "owner-a")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	clone := adapter.Duplicate(ctx, source, "p", "owner-b")
	if clone.URL == source.URL {
		t.Fatalf("duplicate should mint a fresh URL")
	}
	if !store.Has(source.URL) || !store.Has(clone.URL) {
		t.Fatalf("both source and duplicate should exist")
	}
}

func TestDuplicateFailureDegradesToEmpty(t *testing.T) {
	adapter, _ := newTestAdapter()

	clone := adapter.Duplicate(context.Background(), models.AssetSlot{URL: "memory://media-store/media/p/o/missing.png"}, "p", "o")
	if !clone.IsEmpty() {
		t.Fatalf("failed copy should degrade the slot to empty, got %+v", clone)
	}
}
