package sections

import (
	"context"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
)

// accordionHandler handles the accordion variant. Items carry ids and
// lifecycle intents but no asset slots.
type accordionHandler struct {
	newID IDGenerator
}

func accordionItemID(a models.AccordionItem) string            { return a.ID }
func accordionItemIntent(a models.AccordionItem) models.Intent { return a.Intent }

func accordionOf(p models.SectionPayload, sectionType models.SectionType) (*models.AccordionPayload, error) {
	if p.Accordion == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Accordion, nil
}

func (h *accordionHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := accordionOf(payload, models.SectionTypeAccordion)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.AccordionItem, len(body.Items))
	for i, item := range body.Items {
		item.ID = h.newID()
		item.Intent = models.IntentUnchanged
		out[i] = item
	}

	return models.SectionPayload{Accordion: &models.AccordionPayload{Items: out}}, nil
}

func (h *accordionHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := accordionOf(submitted, models.SectionTypeAccordion)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalItems []models.AccordionItem
	if original.Accordion != nil {
		originalItems = original.Accordion.Items
	}

	plan, err := reconcile.PlanExplicit(originalItems, body.Items, accordionItemID, accordionItemIntent)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.AccordionItem, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		switch op.Kind {
		case reconcile.OpRemove:
			// Nothing to release; accordion items own no assets.

		case reconcile.OpUpdate:
			item := op.Submitted
			item.ID = op.Original.ID
			item.Intent = models.IntentUnchanged
			out = append(out, item)

		case reconcile.OpCreate:
			item := op.Submitted
			item.ID = h.newID()
			item.Intent = models.IntentUnchanged
			out = append(out, item)

		default:
			item := op.Submitted
			item.Intent = models.IntentUnchanged
			out = append(out, item)
		}
	}

	return models.SectionPayload{Accordion: &models.AccordionPayload{Items: out}}, nil
}

func (h *accordionHandler) Release(ctx context.Context, payload models.SectionPayload) {}

func (h *accordionHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.AccordionPayload{}
	if payload.Accordion == nil {
		return models.SectionPayload{Accordion: out}
	}

	out.Items = make([]models.AccordionItem, len(payload.Accordion.Items))
	for i, item := range payload.Accordion.Items {
		item.ID = h.newID()
		item.Intent = models.IntentUnchanged
		out.Items[i] = item
	}

	return models.SectionPayload{Accordion: out}
}
