package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
)

// imageHandler reconciles the image variant: a single url+detail slot.
type imageHandler struct {
	assets *assets.Adapter
}

func imageOf(p models.SectionPayload, sectionType models.SectionType) (*models.ImagePayload, error) {
	if p.Image == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Image, nil
}

func (h *imageHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := imageOf(payload, models.SectionTypeImage)
	if err != nil {
		return models.SectionPayload{}, err
	}

	image, err := h.assets.Stage(ctx, body.Image, imageAssetPath, ownerID)
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Image: &models.ImagePayload{Image: image}}, nil
}

func (h *imageHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := imageOf(submitted, models.SectionTypeImage)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalImage models.AssetSlot
	if original.Image != nil {
		originalImage = original.Image.Image
	}

	image, err := h.assets.Apply(ctx, originalImage, body.Image, imageAssetPath, ownerID)
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Image: &models.ImagePayload{Image: image}}, nil
}

func (h *imageHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Image == nil {
		return
	}
	h.assets.Release(ctx, payload.Image.Image)
}

func (h *imageHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.ImagePayload{}
	if payload.Image == nil {
		return models.SectionPayload{Image: out}
	}

	out.Image = h.assets.Duplicate(ctx, payload.Image.Image, imageAssetPath, newOwnerID)
	return models.SectionPayload{Image: out}
}
