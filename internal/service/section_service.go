package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/reconcile"
	"content-studio-backend/internal/repository"
	"content-studio-backend/internal/sections"
	"content-studio-backend/pkg/logger"
)

// SectionService drives the lifecycle of a section document:
// absent -> live -> (live <-> updated) -> soft-deleted, with asset side
// effects applied in lock-step through the variant resolver.
type SectionService struct {
	repo     repository.SectionRepository
	resolver *sections.Resolver
	newID    sections.IDGenerator

	namePolicy *bluemonday.Policy
	textPolicy *bluemonday.Policy
}

func NewSectionService(repo repository.SectionRepository, resolver *sections.Resolver, newID sections.IDGenerator) *SectionService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &SectionService{
		repo:       repo,
		resolver:   resolver,
		newID:      newID,
		namePolicy: bluemonday.StrictPolicy(),
		textPolicy: bluemonday.UGCPolicy(),
	}
}

// isValidationError separates client-caused failures, which surface with
// their own message, from internal ones, which are hidden behind
// ErrMutationFailed.
func isValidationError(err error) bool {
	return errors.Is(err, sections.ErrUnknownSectionType) ||
		errors.Is(err, sections.ErrInvalidPayload) ||
		errors.Is(err, assets.ErrInvalidInlinePayload) ||
		errors.Is(err, reconcile.ErrItemNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrSectionsRequired) ||
		errors.Is(err, ErrSlugTaken)
}

func hideInternal(err error, msg string) error {
	if isValidationError(err) {
		return err
	}
	logger.Error(err, msg, nil)
	return ErrMutationFailed
}

// CreateSection stages a brand-new section: every nested item is treated as
// a create, inline payloads are uploaded, and the document is persisted with
// a fresh identity.
func (s *SectionService) CreateSection(ctx context.Context, submitted models.Section) (*models.Section, error) {
	id := s.newID()

	payload, err := s.resolver.Stage(ctx, submitted.Type, submitted.Payload, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage section payload")
	}

	section := &models.Section{
		ID:          id,
		Type:        submitted.Type,
		Name:        s.namePolicy.Sanitize(submitted.Name),
		Description: s.textPolicy.Sanitize(submitted.Description),
		Color:       submitted.Color,
		Style:       submitted.Style,
		Position:    submitted.Position,
		Status:      models.SectionStatusActive,
		Payload:     payload,
	}

	if err := s.repo.Create(section); err != nil {
		return nil, hideInternal(err, "Failed to create section")
	}

	return section, nil
}

// UpdateSection merges a submission onto the persisted document, driven by
// each nested item's lifecycle intent. The discriminant is immutable.
func (s *SectionService) UpdateSection(ctx context.Context, id string, submitted models.Section) (*models.Section, error) {
	original, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section with ID %s: %w", id, ErrSectionNotFound)
		}
		return nil, hideInternal(err, "Failed to load section")
	}

	if submitted.Type != "" && submitted.Type != original.Type {
		return nil, fmt.Errorf("%w: submitted type '%s' does not match section type '%s'",
			sections.ErrInvalidPayload, submitted.Type, original.Type)
	}

	payload, err := s.resolver.Reconcile(ctx, original.Type, original.Payload, submitted.Payload, original.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to reconcile section payload")
	}

	original.Name = s.namePolicy.Sanitize(submitted.Name)
	original.Description = s.textPolicy.Sanitize(submitted.Description)
	original.Color = submitted.Color
	original.Style = submitted.Style
	original.Position = submitted.Position
	original.Payload = payload

	if err := s.repo.Update(original); err != nil {
		return nil, hideInternal(err, "Failed to update section")
	}

	return original, nil
}

// RemoveSection releases every populated asset slot best-effort, clears the
// collection fields and soft-deletes the document.
func (s *SectionService) RemoveSection(ctx context.Context, original *models.Section) (*models.Section, error) {
	if original == nil {
		return nil, errors.New("section is required")
	}

	if err := s.resolver.Release(ctx, original.Type, original.Payload); err != nil {
		return nil, hideInternal(err, "Failed to release section assets")
	}

	original.Payload = sections.EmptyPayload(original.Type)
	original.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}

	if err := s.repo.Update(original); err != nil {
		return nil, hideInternal(err, "Failed to remove section")
	}

	return original, nil
}

func (s *SectionService) RemoveSectionByID(ctx context.Context, id string) (*models.Section, error) {
	original, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section with ID %s: %w", id, ErrSectionNotFound)
		}
		return nil, hideInternal(err, "Failed to load section")
	}
	return s.RemoveSection(ctx, original)
}

// CloneSection duplicates a section tree depth-first under a fresh identity:
// every nested item gets a new id and every backing asset is copied, never
// shared. The source document is left untouched and the clone starts as a
// draft.
func (s *SectionService) CloneSection(ctx context.Context, original *models.Section) (*models.Section, error) {
	if original == nil {
		return nil, errors.New("section is required")
	}

	newID := s.newID()

	payload, err := s.resolver.Clone(ctx, original.Type, original.Payload, newID)
	if err != nil {
		return nil, hideInternal(err, "Failed to clone section payload")
	}

	clone := &models.Section{
		ID:          newID,
		Type:        original.Type,
		Name:        original.Name,
		Description: original.Description,
		Color:       original.Color,
		Style:       original.Style,
		Position:    original.Position,
		Status:      models.SectionStatusDraft,
		Payload:     payload,
	}

	if err := s.repo.Create(clone); err != nil {
		return nil, hideInternal(err, "Failed to clone section")
	}

	return clone, nil
}

func (s *SectionService) CloneSectionByID(ctx context.Context, id string) (*models.Section, error) {
	original, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section with ID %s: %w", id, ErrSectionNotFound)
		}
		return nil, hideInternal(err, "Failed to load section")
	}
	return s.CloneSection(ctx, original)
}

// GetSection resolves a live section by id.
func (s *SectionService) GetSection(id string) (*models.Section, error) {
	section, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section with ID %s: %w", id, ErrSectionNotFound)
		}
		return nil, hideInternal(err, "Failed to load section")
	}
	return section, nil
}
