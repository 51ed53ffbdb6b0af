package service

import (
	"context"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
	"content-studio-backend/internal/repository"
)

// EntitySections reconciles an entity's top-level section list. Unlike the
// nested items inside a payload, the list carries no intent tags: a submitted
// section with a known id is an update, one without is a create, and a
// persisted section missing from the submission is removed.
type EntitySections struct {
	sectionRepo repository.SectionRepository
	sections    *SectionService
	assets      *assets.Adapter
}

func NewEntitySections(sectionRepo repository.SectionRepository, sections *SectionService, adapter *assets.Adapter) *EntitySections {
	return &EntitySections{
		sectionRepo: sectionRepo,
		sections:    sections,
		assets:      adapter,
	}
}

// Reconcile diffs the submitted sections against the persisted ids and
// applies the resulting creates, updates and removals. It returns the new
// ordered id list: updated sections in submission order, then created ones.
// Removal failures are logged and skipped so one broken section cannot wedge
// the whole entity.
func (e *EntitySections) Reconcile(ctx context.Context, originalIDs []string, submitted []models.Section) ([]string, error) {
	original, err := e.sectionRepo.GetByIDs(originalIDs)
	if err != nil {
		return nil, hideInternal(err, "Failed to load sections")
	}

	plan := reconcile.PlanImplicit(original, submitted, func(s models.Section) string { return s.ID })

	finalIDs := make([]string, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		switch op.Kind {
		case reconcile.OpUpdate:
			updated, err := e.sections.UpdateSection(ctx, op.Original.ID, op.Submitted)
			if err != nil {
				return nil, err
			}
			finalIDs = append(finalIDs, updated.ID)

		case reconcile.OpCreate:
			created, err := e.sections.CreateSection(ctx, op.Submitted)
			if err != nil {
				return nil, err
			}
			finalIDs = append(finalIDs, created.ID)

		case reconcile.OpRemove:
			if _, err := e.sections.RemoveSection(ctx, op.Original); err != nil {
				logError(err, "Failed to remove detached section", op.Original.ID)
			}
		}
	}

	return finalIDs, nil
}

// Load resolves an entity's ordered section list.
func (e *EntitySections) Load(sectionIDs []string) ([]models.Section, error) {
	sections, err := e.sectionRepo.GetByIDs(sectionIDs)
	if err != nil {
		return nil, hideInternal(err, "Failed to load sections")
	}
	return sections, nil
}

// RemoveAll tears down every section of a deleted entity.
func (e *EntitySections) RemoveAll(ctx context.Context, sectionIDs []string) {
	sections, err := e.sectionRepo.GetByIDs(sectionIDs)
	if err != nil {
		logError(err, "Failed to load sections for teardown", "")
		return
	}
	for i := range sections {
		if _, err := e.sections.RemoveSection(ctx, &sections[i]); err != nil {
			logError(err, "Failed to remove section during teardown", sections[i].ID)
		}
	}
}

// StageSlot resolves a direct entity asset slot (banner, thumbnail) on
// creation.
func (e *EntitySections) StageSlot(ctx context.Context, value, path, ownerID string) (models.AssetSlot, error) {
	return e.assets.Stage(ctx, models.AssetSlot{URL: value}, path, ownerID)
}

// ApplySlot reconciles a direct entity asset slot on update. A nil value
// leaves the slot untouched.
func (e *EntitySections) ApplySlot(ctx context.Context, original models.AssetSlot, value *string, path, ownerID string) (models.AssetSlot, error) {
	if value == nil {
		return original, nil
	}
	return e.assets.Apply(ctx, original, models.AssetSlot{URL: *value}, path, ownerID)
}

// ReleaseSlots best-effort deletes an entity's direct slots.
func (e *EntitySections) ReleaseSlots(ctx context.Context, slots ...models.AssetSlot) {
	e.assets.Release(ctx, slots...)
}
