package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
)

// galleryHandler reconciles the gallery variant. Each item carries an image
// slot plus an optional icon slot.
type galleryHandler struct {
	assets *assets.Adapter
	newID  IDGenerator
}

func galleryItemID(g models.GalleryItem) string            { return g.ID }
func galleryItemIntent(g models.GalleryItem) models.Intent { return g.Intent }

func galleryOf(p models.SectionPayload, sectionType models.SectionType) (*models.GalleryPayload, error) {
	if p.Gallery == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Gallery, nil
}

func (h *galleryHandler) stageItem(ctx context.Context, item models.GalleryItem, ownerID string) (models.GalleryItem, error) {
	item.ID = h.newID()
	item.Intent = models.IntentUnchanged

	image, err := h.assets.Stage(ctx, item.Image, galleryAssetPath, ownerID)
	if err != nil {
		return models.GalleryItem{}, err
	}
	icon, err := h.assets.Stage(ctx, item.Icon, galleryAssetPath, ownerID)
	if err != nil {
		return models.GalleryItem{}, err
	}

	item.Image = image
	item.Icon = icon
	return item, nil
}

func (h *galleryHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := galleryOf(payload, models.SectionTypeGallery)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.GalleryItem, len(body.Items))
	err = forEachItem(ctx, len(body.Items), func(ctx context.Context, i int) error {
		item, err := h.stageItem(ctx, body.Items[i], ownerID)
		if err != nil {
			return err
		}
		out[i] = item
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Gallery: &models.GalleryPayload{Items: out}}, nil
}

func (h *galleryHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := galleryOf(submitted, models.SectionTypeGallery)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalItems []models.GalleryItem
	if original.Gallery != nil {
		originalItems = original.Gallery.Items
	}

	plan, err := reconcile.PlanExplicit(originalItems, body.Items, galleryItemID, galleryItemIntent)
	if err != nil {
		return models.SectionPayload{}, err
	}

	results := make([]*models.GalleryItem, len(plan.Ops))
	err = forEachItem(ctx, len(plan.Ops), func(ctx context.Context, i int) error {
		op := plan.Ops[i]
		switch op.Kind {
		case reconcile.OpRemove:
			h.assets.Release(ctx, op.Original.Image, op.Original.Icon)

		case reconcile.OpUpdate:
			item := op.Submitted
			item.ID = op.Original.ID
			item.Intent = models.IntentUnchanged

			image, err := h.assets.Apply(ctx, op.Original.Image, op.Submitted.Image, galleryAssetPath, ownerID)
			if err != nil {
				return err
			}
			icon, err := h.assets.Apply(ctx, op.Original.Icon, op.Submitted.Icon, galleryAssetPath, ownerID)
			if err != nil {
				return err
			}
			item.Image = image
			item.Icon = icon
			results[i] = &item

		case reconcile.OpCreate:
			item, err := h.stageItem(ctx, op.Submitted, ownerID)
			if err != nil {
				return err
			}
			results[i] = &item

		default:
			item := op.Submitted
			item.Intent = models.IntentUnchanged
			results[i] = &item
		}
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.GalleryItem, 0, len(results))
	for _, item := range results {
		if item != nil {
			out = append(out, *item)
		}
	}

	return models.SectionPayload{Gallery: &models.GalleryPayload{Items: out}}, nil
}

func (h *galleryHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Gallery == nil {
		return
	}
	for _, item := range payload.Gallery.Items {
		h.assets.Release(ctx, item.Image, item.Icon)
	}
}

func (h *galleryHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.GalleryPayload{}
	if payload.Gallery == nil {
		return models.SectionPayload{Gallery: out}
	}

	out.Items = make([]models.GalleryItem, len(payload.Gallery.Items))
	_ = forEachItem(ctx, len(payload.Gallery.Items), func(ctx context.Context, i int) error {
		item := payload.Gallery.Items[i]
		item.ID = h.newID()
		item.Intent = models.IntentUnchanged
		item.Image = h.assets.Duplicate(ctx, item.Image, galleryAssetPath, newOwnerID)
		item.Icon = h.assets.Duplicate(ctx, item.Icon, galleryAssetPath, newOwnerID)
		out.Items[i] = item
		return nil
	})

	return models.SectionPayload{Gallery: out}
}
