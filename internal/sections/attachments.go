package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
)

// attachmentsHandler reconciles the attachments variant. Each attachment
// carries a single file slot.
type attachmentsHandler struct {
	assets *assets.Adapter
	newID  IDGenerator
}

func attachmentID(a models.Attachment) string            { return a.ID }
func attachmentIntent(a models.Attachment) models.Intent { return a.Intent }

func attachmentsOf(p models.SectionPayload, sectionType models.SectionType) (*models.AttachmentsPayload, error) {
	if p.Attachments == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Attachments, nil
}

func (h *attachmentsHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := attachmentsOf(payload, models.SectionTypeAttachments)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Attachment, len(body.Attachments))
	err = forEachItem(ctx, len(body.Attachments), func(ctx context.Context, i int) error {
		attachment := body.Attachments[i]
		attachment.ID = h.newID()
		attachment.Intent = models.IntentUnchanged

		slot, err := h.assets.Stage(ctx, attachment.File, attachmentAssetPath, ownerID)
		if err != nil {
			return err
		}
		attachment.File = slot
		out[i] = attachment
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Attachments: &models.AttachmentsPayload{Attachments: out}}, nil
}

func (h *attachmentsHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := attachmentsOf(submitted, models.SectionTypeAttachments)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalAttachments []models.Attachment
	if original.Attachments != nil {
		originalAttachments = original.Attachments.Attachments
	}

	plan, err := reconcile.PlanExplicit(originalAttachments, body.Attachments, attachmentID, attachmentIntent)
	if err != nil {
		return models.SectionPayload{}, err
	}

	results := make([]*models.Attachment, len(plan.Ops))
	err = forEachItem(ctx, len(plan.Ops), func(ctx context.Context, i int) error {
		op := plan.Ops[i]
		switch op.Kind {
		case reconcile.OpRemove:
			h.assets.Release(ctx, op.Original.File)

		case reconcile.OpUpdate:
			attachment := op.Submitted
			attachment.ID = op.Original.ID
			attachment.Intent = models.IntentUnchanged
			slot, err := h.assets.Apply(ctx, op.Original.File, op.Submitted.File, attachmentAssetPath, ownerID)
			if err != nil {
				return err
			}
			attachment.File = slot
			results[i] = &attachment

		case reconcile.OpCreate:
			attachment := op.Submitted
			attachment.ID = h.newID()
			attachment.Intent = models.IntentUnchanged
			slot, err := h.assets.Stage(ctx, attachment.File, attachmentAssetPath, ownerID)
			if err != nil {
				return err
			}
			attachment.File = slot
			results[i] = &attachment

		default:
			attachment := op.Submitted
			attachment.Intent = models.IntentUnchanged
			results[i] = &attachment
		}
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Attachment, 0, len(results))
	for _, attachment := range results {
		if attachment != nil {
			out = append(out, *attachment)
		}
	}

	return models.SectionPayload{Attachments: &models.AttachmentsPayload{Attachments: out}}, nil
}

func (h *attachmentsHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Attachments == nil {
		return
	}
	for _, attachment := range payload.Attachments.Attachments {
		h.assets.Release(ctx, attachment.File)
	}
}

func (h *attachmentsHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.AttachmentsPayload{}
	if payload.Attachments == nil {
		return models.SectionPayload{Attachments: out}
	}

	out.Attachments = make([]models.Attachment, len(payload.Attachments.Attachments))
	_ = forEachItem(ctx, len(payload.Attachments.Attachments), func(ctx context.Context, i int) error {
		attachment := payload.Attachments.Attachments[i]
		attachment.ID = h.newID()
		attachment.Intent = models.IntentUnchanged
		attachment.File = h.assets.Duplicate(ctx, attachment.File, attachmentAssetPath, newOwnerID)
		out.Attachments[i] = attachment
		return nil
	})

	return models.SectionPayload{Attachments: out}
}
