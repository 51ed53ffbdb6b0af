package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
)

// gridsHandler reconciles the grids variant. A grids payload nests one level
// deeper than the other collections: each grid owns a layout collection that
// is itself reconciled with the explicit policy, and each layout carries up
// to three asset slots (image, button picture, button icon).
type gridsHandler struct {
	assets *assets.Adapter
	newID  IDGenerator
}

func gridID(g models.Grid) string            { return g.ID }
func gridIntent(g models.Grid) models.Intent { return g.Intent }

func layoutID(l models.GridLayout) string            { return l.ID }
func layoutIntent(l models.GridLayout) models.Intent { return l.Intent }

func gridsOf(p models.SectionPayload, sectionType models.SectionType) (*models.GridsPayload, error) {
	if p.Grids == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Grids, nil
}

func (h *gridsHandler) stageLayout(ctx context.Context, layout models.GridLayout, ownerID string) (models.GridLayout, error) {
	layout.ID = h.newID()
	layout.Intent = models.IntentUnchanged

	image, err := h.assets.Stage(ctx, layout.Image, gridAssetPath, ownerID)
	if err != nil {
		return models.GridLayout{}, err
	}
	buttonPicture, err := h.assets.Stage(ctx, layout.ButtonPicture, gridAssetPath, ownerID)
	if err != nil {
		return models.GridLayout{}, err
	}
	buttonIcon, err := h.assets.Stage(ctx, layout.ButtonIcon, gridAssetPath, ownerID)
	if err != nil {
		return models.GridLayout{}, err
	}

	layout.Image = image
	layout.ButtonPicture = buttonPicture
	layout.ButtonIcon = buttonIcon
	return layout, nil
}

func (h *gridsHandler) stageGrid(ctx context.Context, grid models.Grid, ownerID string) (models.Grid, error) {
	grid.ID = h.newID()
	grid.Intent = models.IntentUnchanged

	layouts := make([]models.GridLayout, len(grid.Layouts))
	err := forEachItem(ctx, len(grid.Layouts), func(ctx context.Context, i int) error {
		layout, err := h.stageLayout(ctx, grid.Layouts[i], ownerID)
		if err != nil {
			return err
		}
		layouts[i] = layout
		return nil
	})
	if err != nil {
		return models.Grid{}, err
	}

	grid.Layouts = layouts
	return grid, nil
}

func (h *gridsHandler) releaseLayout(ctx context.Context, layout models.GridLayout) {
	h.assets.Release(ctx, layout.Image, layout.ButtonPicture, layout.ButtonIcon)
}

// reconcileLayouts merges a grid's submitted layout collection onto the
// persisted one.
func (h *gridsHandler) reconcileLayouts(ctx context.Context, original, submitted []models.GridLayout, ownerID string) ([]models.GridLayout, error) {
	plan, err := reconcile.PlanExplicit(original, submitted, layoutID, layoutIntent)
	if err != nil {
		return nil, err
	}

	results := make([]*models.GridLayout, len(plan.Ops))
	err = forEachItem(ctx, len(plan.Ops), func(ctx context.Context, i int) error {
		op := plan.Ops[i]
		switch op.Kind {
		case reconcile.OpRemove:
			h.releaseLayout(ctx, *op.Original)

		case reconcile.OpUpdate:
			layout := op.Submitted
			layout.ID = op.Original.ID
			layout.Intent = models.IntentUnchanged

			image, err := h.assets.Apply(ctx, op.Original.Image, op.Submitted.Image, gridAssetPath, ownerID)
			if err != nil {
				return err
			}
			buttonPicture, err := h.assets.Apply(ctx, op.Original.ButtonPicture, op.Submitted.ButtonPicture, gridAssetPath, ownerID)
			if err != nil {
				return err
			}
			buttonIcon, err := h.assets.Apply(ctx, op.Original.ButtonIcon, op.Submitted.ButtonIcon, gridAssetPath, ownerID)
			if err != nil {
				return err
			}
			layout.Image = image
			layout.ButtonPicture = buttonPicture
			layout.ButtonIcon = buttonIcon
			results[i] = &layout

		case reconcile.OpCreate:
			layout, err := h.stageLayout(ctx, op.Submitted, ownerID)
			if err != nil {
				return err
			}
			results[i] = &layout

		default:
			layout := op.Submitted
			layout.Intent = models.IntentUnchanged
			results[i] = &layout
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.GridLayout, 0, len(results))
	for _, layout := range results {
		if layout != nil {
			out = append(out, *layout)
		}
	}
	return out, nil
}

func (h *gridsHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := gridsOf(payload, models.SectionTypeGrids)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Grid, len(body.Grids))
	for i, grid := range body.Grids {
		staged, err := h.stageGrid(ctx, grid, ownerID)
		if err != nil {
			return models.SectionPayload{}, err
		}
		out[i] = staged
	}

	return models.SectionPayload{Grids: &models.GridsPayload{Grids: out}}, nil
}

func (h *gridsHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := gridsOf(submitted, models.SectionTypeGrids)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalGrids []models.Grid
	if original.Grids != nil {
		originalGrids = original.Grids.Grids
	}

	plan, err := reconcile.PlanExplicit(originalGrids, body.Grids, gridID, gridIntent)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Grid, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		switch op.Kind {
		case reconcile.OpRemove:
			for _, layout := range op.Original.Layouts {
				h.releaseLayout(ctx, layout)
			}

		case reconcile.OpUpdate:
			grid := op.Submitted
			grid.ID = op.Original.ID
			grid.Intent = models.IntentUnchanged
			layouts, err := h.reconcileLayouts(ctx, op.Original.Layouts, op.Submitted.Layouts, ownerID)
			if err != nil {
				return models.SectionPayload{}, err
			}
			grid.Layouts = layouts
			out = append(out, grid)

		case reconcile.OpCreate:
			grid, err := h.stageGrid(ctx, op.Submitted, ownerID)
			if err != nil {
				return models.SectionPayload{}, err
			}
			out = append(out, grid)

		default:
			grid := op.Submitted
			grid.Intent = models.IntentUnchanged
			out = append(out, grid)
		}
	}

	return models.SectionPayload{Grids: &models.GridsPayload{Grids: out}}, nil
}

func (h *gridsHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Grids == nil {
		return
	}
	for _, grid := range payload.Grids.Grids {
		for _, layout := range grid.Layouts {
			h.releaseLayout(ctx, layout)
		}
	}
}

func (h *gridsHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.GridsPayload{}
	if payload.Grids == nil {
		return models.SectionPayload{Grids: out}
	}

	out.Grids = make([]models.Grid, len(payload.Grids.Grids))
	for i, grid := range payload.Grids.Grids {
		grid.ID = h.newID()
		grid.Intent = models.IntentUnchanged

		layouts := make([]models.GridLayout, len(grid.Layouts))
		_ = forEachItem(ctx, len(grid.Layouts), func(ctx context.Context, j int) error {
			layout := grid.Layouts[j]
			layout.ID = h.newID()
			layout.Intent = models.IntentUnchanged
			layout.Image = h.assets.Duplicate(ctx, layout.Image, gridAssetPath, newOwnerID)
			layout.ButtonPicture = h.assets.Duplicate(ctx, layout.ButtonPicture, gridAssetPath, newOwnerID)
			layout.ButtonIcon = h.assets.Duplicate(ctx, layout.ButtonIcon, gridAssetPath, newOwnerID)
			layouts[j] = layout
			return nil
		})
		grid.Layouts = layouts
		out.Grids[i] = grid
	}

	return models.SectionPayload{Grids: out}
}
