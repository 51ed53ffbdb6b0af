package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
)

// bannerHandler reconciles the banner variant: no nested collection, one
// section-level picture slot.
type bannerHandler struct {
	assets *assets.Adapter
}

func bannerOf(p models.SectionPayload, sectionType models.SectionType) (*models.BannerPayload, error) {
	if p.Banner == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Banner, nil
}

func (h *bannerHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := bannerOf(payload, models.SectionTypeBanner)
	if err != nil {
		return models.SectionPayload{}, err
	}

	picture, err := h.assets.Stage(ctx, body.Picture, bannerAssetPath, ownerID)
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Banner: &models.BannerPayload{
		Text:    body.Text,
		Link:    body.Link,
		Picture: picture,
	}}, nil
}

func (h *bannerHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := bannerOf(submitted, models.SectionTypeBanner)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalPicture models.AssetSlot
	if original.Banner != nil {
		originalPicture = original.Banner.Picture
	}

	picture, err := h.assets.Apply(ctx, originalPicture, body.Picture, bannerAssetPath, ownerID)
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Banner: &models.BannerPayload{
		Text:    body.Text,
		Link:    body.Link,
		Picture: picture,
	}}, nil
}

func (h *bannerHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Banner == nil {
		return
	}
	h.assets.Release(ctx, payload.Banner.Picture)
}

func (h *bannerHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.BannerPayload{}
	if payload.Banner == nil {
		return models.SectionPayload{Banner: out}
	}

	out.Text = payload.Banner.Text
	out.Link = payload.Banner.Link
	out.Picture = h.assets.Duplicate(ctx, payload.Banner.Picture, bannerAssetPath, newOwnerID)
	return models.SectionPayload{Banner: out}
}
