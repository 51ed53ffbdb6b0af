package sections

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/storage"
)

const inlinePNG = "data:image/png;base64,aGVsbG8="

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestResolver() (*Resolver, *storage.MemoryStore) {
	store := storage.NewMemoryStore("media")
	adapter := assets.NewAdapter(store)
	return NewResolver(adapter, sequentialIDs("id")), store
}

func cardsPayload(cards ...models.Card) models.SectionPayload {
	return models.SectionPayload{Cards: &models.CardsPayload{Cards: cards}}
}

func TestCardsStageAssignsIDsAndUploads(t *testing.T) {
	resolver, store := newTestResolver()

	payload, err := resolver.Stage(context.Background(), models.SectionTypeCards, cardsPayload(
		models.Card{Name: "one", Picture: models.AssetSlot{URL: inlinePNG}},
		models.Card{Name: "two"},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	cards := payload.Cards.Cards
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for i, card := range cards {
		if card.ID == "" {
			t.Fatalf("card %d should get a fresh id", i)
		}
		if card.Intent != models.IntentUnchanged {
			t.Fatalf("card %d should have its intent cleared", i)
		}
	}
	if !store.Has(cards[0].Picture.URL) {
		t.Fatalf("inline picture should be uploaded")
	}
	if !cards[1].Picture.IsEmpty() {
		t.Fatalf("card without picture should keep an empty slot")
	}
}

func TestCardsReconcileAppliesIntents(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeCards, cardsPayload(
		models.Card{Name: "keep-me", Picture: models.AssetSlot{URL: inlinePNG}},
		models.Card{Name: "doomed", Picture: models.AssetSlot{URL: inlinePNG}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	kept, doomed := original.Cards.Cards[0], original.Cards.Cards[1]

	submitted := cardsPayload(
		models.Card{ID: kept.ID, Name: "renamed", Picture: models.AssetSlot{URL: inlinePNG}, Intent: models.IntentUpdate},
		models.Card{ID: doomed.ID, Intent: models.IntentRemove},
		models.Card{Name: "fresh", Picture: models.AssetSlot{URL: inlinePNG}, Intent: models.IntentCreate},
	)

	result, err := resolver.Reconcile(ctx, models.SectionTypeCards, original, submitted, "section-1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	cards := result.Cards.Cards
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards after reconcile, got %d", len(cards))
	}

	if cards[0].ID != kept.ID {
		t.Fatalf("updated card must keep its id, got %q want %q", cards[0].ID, kept.ID)
	}
	if cards[0].Name != "renamed" {
		t.Fatalf("updated card should carry submitted fields, got %q", cards[0].Name)
	}
	if cards[0].Picture.URL == kept.Picture.URL {
		t.Fatalf("replaced picture should have a fresh URL")
	}
	if store.Has(kept.Picture.URL) {
		t.Fatalf("old picture should be deleted on replacement")
	}

	if cards[1].ID == "" || cards[1].ID == kept.ID || cards[1].ID == doomed.ID {
		t.Fatalf("created card must get a fresh id, got %q", cards[1].ID)
	}
	if !store.Has(cards[1].Picture.URL) {
		t.Fatalf("created card's picture should be uploaded")
	}

	if store.Has(doomed.Picture.URL) {
		t.Fatalf("removed card's picture should be released")
	}
}

func TestCardsReconcileResubmissionIsIdempotent(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeCards, cardsPayload(
		models.Card{Name: "a", Picture: models.AssetSlot{URL: inlinePNG}},
		models.Card{Name: "b"},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	objects := store.Len()

	// Resubmitting the persisted payload untouched, with no intents, must be
	// a pure no-op: identical payload, no uploads, no deletes.
	result, err := resolver.Reconcile(ctx, models.SectionTypeCards, original, original, "section-1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if !reflect.DeepEqual(result, original) {
		t.Fatalf("resubmission changed the payload:\n got %+v\nwant %+v", result, original)
	}
	if store.Len() != objects {
		t.Fatalf("resubmission touched the store: %d objects, want %d", store.Len(), objects)
	}
	if !store.Has(original.Cards.Cards[0].Picture.URL) {
		t.Fatalf("persisted asset must survive a no-op resubmission")
	}
}

func TestCardsReconcileUpdateOfUnknownCardFails(t *testing.T) {
	resolver, _ := newTestResolver()

	_, err := resolver.Reconcile(context.Background(), models.SectionTypeCards,
		cardsPayload(),
		cardsPayload(models.Card{ID: "ghost", Intent: models.IntentUpdate}),
		"section-1")
	if err == nil {
		t.Fatalf("expected error for update of unknown card")
	}
}

func TestCardsReleaseDeletesEveryPicture(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	payload, err := resolver.Stage(ctx, models.SectionTypeCards, cardsPayload(
		models.Card{Name: "a", Picture: models.AssetSlot{URL: inlinePNG}},
		models.Card{Name: "b", Picture: models.AssetSlot{URL: inlinePNG}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	if err := resolver.Release(ctx, models.SectionTypeCards, payload); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected all pictures deleted, %d objects remain", store.Len())
	}
}

func TestCardsCloneRegeneratesIDsAndCopiesAssets(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeCards, cardsPayload(
		models.Card{Name: "a", Picture: models.AssetSlot{URL: inlinePNG}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	source := original.Cards.Cards[0]

	clone, err := resolver.Clone(ctx, models.SectionTypeCards, original, "section-2")
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	cloned := clone.Cards.Cards[0]

	if cloned.ID == source.ID {
		t.Fatalf("cloned card must get a fresh id")
	}
	if cloned.Picture.URL == source.Picture.URL {
		t.Fatalf("cloned picture must not share the source URL")
	}
	if !strings.Contains(cloned.Picture.URL, "section-2") {
		t.Fatalf("cloned picture should live under the new owner, got %q", cloned.Picture.URL)
	}
	if !store.Has(source.Picture.URL) {
		t.Fatalf("source asset must survive cloning")
	}
	if !store.Has(cloned.Picture.URL) {
		t.Fatalf("cloned asset should exist")
	}
}

func TestResolverRejectsUnknownType(t *testing.T) {
	resolver, _ := newTestResolver()

	_, err := resolver.Stage(context.Background(), "carousel", models.SectionPayload{}, "s")
	if err == nil {
		t.Fatalf("expected error for unknown section type")
	}
}

func TestResolverRejectsMismatchedPayload(t *testing.T) {
	resolver, _ := newTestResolver()

	_, err := resolver.Stage(context.Background(), models.SectionTypeCards,
		models.SectionPayload{Banner: &models.BannerPayload{}}, "s")
	if err == nil {
		t.Fatalf("expected error for mismatched payload variant")
	}
}
