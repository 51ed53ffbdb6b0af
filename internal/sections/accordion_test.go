package sections

import (
	"context"
	"testing"

	"content-studio-backend/internal/models"
)

func accordionPayload(items ...models.AccordionItem) models.SectionPayload {
	return models.SectionPayload{Accordion: &models.AccordionPayload{Items: items}}
}

func TestAccordionReconcileWithoutAssets(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeAccordion, accordionPayload(
		models.AccordionItem{Title: "q1", Body: "a1"},
		models.AccordionItem{Title: "q2", Body: "a2"},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	first, second := original.Accordion.Items[0], original.Accordion.Items[1]

	result, err := resolver.Reconcile(ctx, models.SectionTypeAccordion, original, accordionPayload(
		models.AccordionItem{ID: first.ID, Title: "q1 revised", Body: "a1 revised", Intent: models.IntentUpdate},
		models.AccordionItem{ID: second.ID, Intent: models.IntentRemove},
		models.AccordionItem{Title: "q3", Body: "a3", Intent: models.IntentCreate},
	), "section-1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	items := result.Accordion.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != first.ID || items[0].Title != "q1 revised" {
		t.Fatalf("updated item should keep id and carry new fields, got %+v", items[0])
	}
	if items[1].ID == "" || items[1].Title != "q3" {
		t.Fatalf("created item should get a fresh id, got %+v", items[1])
	}
	if store.Len() != 0 {
		t.Fatalf("accordion must never touch the blob store")
	}
}

func TestEmptyPayloadMatchesVariant(t *testing.T) {
	for _, sectionType := range models.SectionTypes() {
		payload := EmptyPayload(sectionType)
		switch sectionType {
		case models.SectionTypeCards:
			if payload.Cards == nil {
				t.Fatalf("cards variant should be set")
			}
		case models.SectionTypeBanner:
			if payload.Banner == nil {
				t.Fatalf("banner variant should be set")
			}
		case models.SectionTypeTable:
			if payload.Table == nil {
				t.Fatalf("table variant should be set")
			}
		case models.SectionTypeAttachments:
			if payload.Attachments == nil {
				t.Fatalf("attachments variant should be set")
			}
		case models.SectionTypeImage:
			if payload.Image == nil {
				t.Fatalf("image variant should be set")
			}
		case models.SectionTypeGrids:
			if payload.Grids == nil {
				t.Fatalf("grids variant should be set")
			}
		case models.SectionTypeGallery:
			if payload.Gallery == nil {
				t.Fatalf("gallery variant should be set")
			}
		case models.SectionTypeAccordion:
			if payload.Accordion == nil {
				t.Fatalf("accordion variant should be set")
			}
		}
	}
}
