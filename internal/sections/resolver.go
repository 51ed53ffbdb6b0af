// Package sections maps a section's discriminant to the handler that knows
// the nested shape of its payload, which fields carry asset slots, and how
// to reconcile, release and clone them.
package sections

import (
	"context"
	"errors"
	"fmt"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
)

var (
	ErrUnknownSectionType = errors.New("unknown section type")
	ErrInvalidPayload     = errors.New("invalid section payload")
)

// IDGenerator produces fresh identities for sections and nested items. It is
// injected so tests can run deterministically.
type IDGenerator func() string

// Handler reconciles one variant's payload. Stage resolves a brand-new
// payload (every nested item treated as a create); Reconcile merges a
// submission onto the persisted original driven by per-item intents; Release
// best-effort deletes every populated slot; Clone duplicates the payload and
// its backing assets for a new owner.
type Handler interface {
	Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error)
	Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error)
	Release(ctx context.Context, payload models.SectionPayload)
	Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload
}

// Resolver dispatches payload operations to the handler registered for the
// section's discriminant.
type Resolver struct {
	handlers map[models.SectionType]Handler
}

func NewResolver(adapter *assets.Adapter, newID IDGenerator) *Resolver {
	return &Resolver{
		handlers: map[models.SectionType]Handler{
			models.SectionTypeCards:       &cardsHandler{assets: adapter, newID: newID},
			models.SectionTypeBanner:      &bannerHandler{assets: adapter},
			models.SectionTypeTable:       &tableHandler{},
			models.SectionTypeAttachments: &attachmentsHandler{assets: adapter, newID: newID},
			models.SectionTypeImage:       &imageHandler{assets: adapter},
			models.SectionTypeGrids:       &gridsHandler{assets: adapter, newID: newID},
			models.SectionTypeGallery:     &galleryHandler{assets: adapter, newID: newID},
			models.SectionTypeAccordion:   &accordionHandler{newID: newID},
		},
	}
}

func (r *Resolver) handler(sectionType models.SectionType) (Handler, error) {
	h, ok := r.handlers[sectionType]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownSectionType, sectionType)
	}
	return h, nil
}

func (r *Resolver) Stage(ctx context.Context, sectionType models.SectionType, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	h, err := r.handler(sectionType)
	if err != nil {
		return models.SectionPayload{}, err
	}
	return h.Stage(ctx, payload, ownerID)
}

func (r *Resolver) Reconcile(ctx context.Context, sectionType models.SectionType, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	h, err := r.handler(sectionType)
	if err != nil {
		return models.SectionPayload{}, err
	}
	return h.Reconcile(ctx, original, submitted, ownerID)
}

func (r *Resolver) Release(ctx context.Context, sectionType models.SectionType, payload models.SectionPayload) error {
	h, err := r.handler(sectionType)
	if err != nil {
		return err
	}
	h.Release(ctx, payload)
	return nil
}

func (r *Resolver) Clone(ctx context.Context, sectionType models.SectionType, payload models.SectionPayload, newOwnerID string) (models.SectionPayload, error) {
	h, err := r.handler(sectionType)
	if err != nil {
		return models.SectionPayload{}, err
	}
	return h.Clone(ctx, payload, newOwnerID), nil
}

func payloadMismatch(sectionType models.SectionType) error {
	return fmt.Errorf("%w: payload does not match section type '%s'", ErrInvalidPayload, sectionType)
}

// EmptyPayload returns the emptied form of a variant, used when a removed
// section is persisted with its collections cleared.
func EmptyPayload(sectionType models.SectionType) models.SectionPayload {
	switch sectionType {
	case models.SectionTypeCards:
		return models.SectionPayload{Cards: &models.CardsPayload{}}
	case models.SectionTypeBanner:
		return models.SectionPayload{Banner: &models.BannerPayload{}}
	case models.SectionTypeTable:
		return models.SectionPayload{Table: &models.TablePayload{}}
	case models.SectionTypeAttachments:
		return models.SectionPayload{Attachments: &models.AttachmentsPayload{}}
	case models.SectionTypeImage:
		return models.SectionPayload{Image: &models.ImagePayload{}}
	case models.SectionTypeGrids:
		return models.SectionPayload{Grids: &models.GridsPayload{}}
	case models.SectionTypeGallery:
		return models.SectionPayload{Gallery: &models.GalleryPayload{}}
	case models.SectionTypeAccordion:
		return models.SectionPayload{Accordion: &models.AccordionPayload{}}
	default:
		return models.SectionPayload{}
	}
}
