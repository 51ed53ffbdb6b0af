package sections

import (
	"context"

	"content-studio-backend/internal/models"
)

// tableHandler handles the table variant. Tables carry no asset slots, so
// every operation is an ordinary field merge.
type tableHandler struct{}

func tableOf(p models.SectionPayload, sectionType models.SectionType) (*models.TablePayload, error) {
	if p.Table == nil {
		return nil, payloadMismatch(sectionType)
	}
	return p.Table, nil
}

func (h *tableHandler) Stage(ctx context.Context, payload models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := tableOf(payload, models.SectionTypeTable)
	if err != nil {
		return models.SectionPayload{}, err
	}
	return models.SectionPayload{Table: copyTable(body)}, nil
}

func (h *tableHandler) Reconcile(ctx context.Context, original, submitted models.SectionPayload, ownerID string) (models.SectionPayload, error) {
	body, err := tableOf(submitted, models.SectionTypeTable)
	if err != nil {
		return models.SectionPayload{}, err
	}
	return models.SectionPayload{Table: copyTable(body)}, nil
}

func (h *tableHandler) Release(ctx context.Context, payload models.SectionPayload) {}

func (h *tableHandler) Clone(ctx context.Context, payload models.SectionPayload, newOwnerID string) models.SectionPayload {
	if payload.Table == nil {
		return models.SectionPayload{Table: &models.TablePayload{}}
	}
	return models.SectionPayload{Table: copyTable(payload.Table)}
}

func copyTable(body *models.TablePayload) *models.TablePayload {
	out := &models.TablePayload{
		Columns: append([]string(nil), body.Columns...),
		Rows:    make([]models.TableRow, len(body.Rows)),
	}
	for i, row := range body.Rows {
		out.Rows[i] = models.TableRow{Cells: append([]string(nil), row.Cells...)}
	}
	return out
}
