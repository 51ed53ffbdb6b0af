package sections

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
)

// cardsHandler reconciles the cards variant. Each card carries a single
// picture slot.
type cardsHandler struct {
	assets *assets.Adapter
	newID  IDGenerator
}

func cardID(c models.Card) string            { return c.ID }
func cardIntent(c models.Card) models.Intent { return c.Intent }

func cardsOf(p models.SectionPayload, sectionType models.SectionType) (*models.CardsPayload, error) {
	if p.Cards == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Cards, nil
}

func (h *cardsHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := cardsOf(payload, models.SectionTypeCards)
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Card, len(body.Cards))
	err = forEachItem(ctx, len(body.Cards), func(ctx context.Context, i int) error {
		card := body.Cards[i]
		card.ID = h.newID()
		card.Intent = models.IntentUnchanged

		slot, err := h.assets.Stage(ctx, card.Picture, cardAssetPath, ownerID)
		if err != nil {
			return err
		}
		card.Picture = slot
		out[i] = card
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	return models.SectionPayload{Cards: &models.CardsPayload{Cards: out}}, nil
}

func (h *cardsHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := cardsOf(submitted, models.SectionTypeCards)
	if err != nil {
		return models.SectionPayload{}, err
	}

	var originalCards []models.Card
	if original.Cards != nil {
		originalCards = original.Cards.Cards
	}

	plan, err := reconcile.PlanExplicit(originalCards, body.Cards, cardID, cardIntent)
	if err != nil {
		return models.SectionPayload{}, err
	}

	results := make([]*models.Card, len(plan.Ops))
	err = forEachItem(ctx, len(plan.Ops), func(ctx context.Context, i int) error {
		op := plan.Ops[i]
		switch op.Kind {
		case reconcile.OpRemove:
			h.assets.Release(ctx, op.Original.Picture)

		case reconcile.OpUpdate:
			card := op.Submitted
			card.ID = op.Original.ID
			card.Intent = models.IntentUnchanged
			slot, err := h.assets.Apply(ctx, op.Original.Picture, op.Submitted.Picture, cardAssetPath, ownerID)
			if err != nil {
				return err
			}
			card.Picture = slot
			results[i] = &card

		case reconcile.OpCreate:
			card := op.Submitted
			card.ID = h.newID()
			card.Intent = models.IntentUnchanged
			slot, err := h.assets.Stage(ctx, card.Picture, cardAssetPath, ownerID)
			if err != nil {
				return err
			}
			card.Picture = slot
			results[i] = &card

		default:
			card := op.Submitted
			card.Intent = models.IntentUnchanged
			results[i] = &card
		}
		return nil
	})
	if err != nil {
		return models.SectionPayload{}, err
	}

	out := make([]models.Card, 0, len(results))
	for _, card := range results {
		if card != nil {
			out = append(out, *card)
		}
	}

	return models.SectionPayload{Cards: &models.CardsPayload{Cards: out}}, nil
}

func (h *cardsHandler) Release(ctx context.Context, payload models.SectionPayload) {
	if payload.Cards == nil {
		return
	}
	for _, card := range payload.Cards.Cards {
		h.assets.Release(ctx, card.Picture)
	}
}

func (h *cardsHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	out := &models.CardsPayload{}
	if payload.Cards == nil {
		return models.SectionPayload{Cards: out}
	}

	out.Cards = make([]models.Card, len(payload.Cards.Cards))
	_ = forEachItem(ctx, len(payload.Cards.Cards), func(ctx context.Context, i int) error {
		card := payload.Cards.Cards[i]
		card.ID = h.newID()
		card.Intent = models.IntentUnchanged
		card.Picture = h.assets.Duplicate(ctx, card.Picture, cardAssetPath, newOwnerID)
		out.Cards[i] = card
		return nil
	})

	return models.SectionPayload{Cards: out}
}
