package sections

import (
	"context"
	"testing"

	"content-studio-backend/internal/models"
)

func gridsPayload(grids ...models.Grid) models.SectionPayload {
	return models.SectionPayload{Grids: &models.GridsPayload{Grids: grids}}
}

func TestGridsStageAssignsIDsAtBothLevels(t *testing.T) {
	resolver, store := newTestResolver()

	payload, err := resolver.Stage(context.Background(), models.SectionTypeGrids, gridsPayload(
		models.Grid{Name: "hero", Layouts: []models.GridLayout{
			{Position: 1, Image: models.AssetSlot{URL: inlinePNG}},
			{Position: 2, ButtonIcon: models.AssetSlot{URL: inlinePNG}},
		}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	grid := payload.Grids.Grids[0]
	if grid.ID == "" {
		t.Fatalf("grid should get a fresh id")
	}
	seen := map[string]bool{grid.ID: true}
	for i, layout := range grid.Layouts {
		if layout.ID == "" || seen[layout.ID] {
			t.Fatalf("layout %d should get a distinct fresh id", i)
		}
		seen[layout.ID] = true
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 uploaded assets, got %d", store.Len())
	}
}

func TestGridsReconcileNestedLayouts(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeGrids, gridsPayload(
		models.Grid{Name: "hero", Layouts: []models.GridLayout{
			{Position: 1, Image: models.AssetSlot{URL: inlinePNG}},
			{Position: 2, Image: models.AssetSlot{URL: inlinePNG}},
		}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	grid := original.Grids.Grids[0]
	first, second := grid.Layouts[0], grid.Layouts[1]

	submitted := gridsPayload(models.Grid{
		ID:     grid.ID,
		Name:   "hero-renamed",
		Intent: models.IntentUpdate,
		Layouts: []models.GridLayout{
			{ID: first.ID, Position: 1, Image: models.AssetSlot{URL: first.Image.URL}, Intent: models.IntentUpdate},
			{ID: second.ID, Intent: models.IntentRemove},
			{Position: 3, Image: models.AssetSlot{URL: inlinePNG}, Intent: models.IntentCreate},
		},
	})

	result, err := resolver.Reconcile(ctx, models.SectionTypeGrids, original, submitted, "section-1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	got := result.Grids.Grids[0]
	if got.ID != grid.ID {
		t.Fatalf("updated grid must keep its id")
	}
	if got.Name != "hero-renamed" {
		t.Fatalf("updated grid should carry submitted fields, got %q", got.Name)
	}
	if len(got.Layouts) != 2 {
		t.Fatalf("expected 2 layouts after reconcile, got %d", len(got.Layouts))
	}

	if got.Layouts[0].ID != first.ID {
		t.Fatalf("updated layout must keep its id")
	}
	if got.Layouts[0].Image.URL != first.Image.URL {
		t.Fatalf("resubmitted image URL should be kept")
	}

	if got.Layouts[1].ID == "" || got.Layouts[1].ID == second.ID {
		t.Fatalf("created layout must get a fresh id")
	}

	if store.Has(second.Image.URL) {
		t.Fatalf("removed layout's image should be released")
	}
}

func TestGridsRemoveGridReleasesAllLayoutAssets(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeGrids, gridsPayload(
		models.Grid{Layouts: []models.GridLayout{
			{Image: models.AssetSlot{URL: inlinePNG}, ButtonPicture: models.AssetSlot{URL: inlinePNG}},
		}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	grid := original.Grids.Grids[0]

	result, err := resolver.Reconcile(ctx, models.SectionTypeGrids, original, gridsPayload(
		models.Grid{ID: grid.ID, Intent: models.IntentRemove},
	), "section-1")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(result.Grids.Grids) != 0 {
		t.Fatalf("removed grid should vanish from the payload")
	}
	if store.Len() != 0 {
		t.Fatalf("all layout assets should be released, %d remain", store.Len())
	}
}

func TestGridsCloneRegeneratesNestedIdentity(t *testing.T) {
	resolver, store := newTestResolver()
	ctx := context.Background()

	original, err := resolver.Stage(ctx, models.SectionTypeGrids, gridsPayload(
		models.Grid{Layouts: []models.GridLayout{
			{Image: models.AssetSlot{URL: inlinePNG}},
		}},
	), "section-1")
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	sourceGrid := original.Grids.Grids[0]

	clone, err := resolver.Clone(ctx, models.SectionTypeGrids, original, "section-2")
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	clonedGrid := clone.Grids.Grids[0]

	if clonedGrid.ID == sourceGrid.ID {
		t.Fatalf("cloned grid must get a fresh id")
	}
	if clonedGrid.Layouts[0].ID == sourceGrid.Layouts[0].ID {
		t.Fatalf("cloned layout must get a fresh id")
	}
	if clonedGrid.Layouts[0].Image.URL == sourceGrid.Layouts[0].Image.URL {
		t.Fatalf("cloned layout image must not share the source URL")
	}
	if store.Len() != 2 {
		t.Fatalf("expected source and clone assets to coexist, got %d objects", store.Len())
	}
}
