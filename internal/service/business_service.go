package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/repository"
	"content-studio-backend/internal/sections"
	"content-studio-backend/pkg/cache"
	"content-studio-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	businessBannerPath    = "businesses/banner"
	businessThumbnailPath = "businesses/thumbnail"
)

type BusinessService struct {
	repo     repository.BusinessRepository
	sections *EntitySections
	cache    *cache.Cache
	newID    sections.IDGenerator
}

func NewBusinessService(repo repository.BusinessRepository, entitySections *EntitySections, c *cache.Cache, newID sections.IDGenerator) *BusinessService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &BusinessService{
		repo:     repo,
		sections: entitySections,
		cache:    c,
		newID:    newID,
	}
}

func (s *BusinessService) CreateBusiness(ctx context.Context, req models.CreateBusinessRequest) (*models.Business, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}
	if taken, err := s.repo.ExistsBySlug(slug); err != nil {
		return nil, hideInternal(err, "Failed to check business slug")
	} else if taken {
		return nil, ErrSlugTaken
	}

	id := s.newID()

	banner, err := s.sections.StageSlot(ctx, req.Banner, businessBannerPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage business banner")
	}
	thumbnail, err := s.sections.StageSlot(ctx, req.Thumbnail, businessThumbnailPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage business thumbnail")
	}

	sectionIDs, err := s.sections.Reconcile(ctx, nil, req.Sections.Or(nil))
	if err != nil {
		return nil, err
	}

	business := &models.Business{
		ID:          id,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Published:   req.Published,
		Banner:      banner,
		Thumbnail:   thumbnail,
		SectionIDs:  sectionIDs,
	}

	if err := s.repo.Create(business); err != nil {
		return nil, hideInternal(err, "Failed to create business")
	}

	s.invalidate(business.ID)
	return business, nil
}

func (s *BusinessService) UpdateBusiness(ctx context.Context, id string, req models.UpdateBusinessRequest) (*models.Business, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	business, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business with ID %s: %w", id, ErrBusinessNotFound)
		}
		return nil, hideInternal(err, "Failed to load business")
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Description != nil {
		business.Description = *req.Description
	}
	if req.Published != nil {
		business.Published = *req.Published
	}

	business.Banner, err = s.sections.ApplySlot(ctx, business.Banner, req.Banner, businessBannerPath, business.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply business banner")
	}
	business.Thumbnail, err = s.sections.ApplySlot(ctx, business.Thumbnail, req.Thumbnail, businessThumbnailPath, business.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply business thumbnail")
	}

	if req.Sections.Set {
		sectionIDs, err := s.sections.Reconcile(ctx, business.SectionIDs, req.Sections.Value)
		if err != nil {
			return nil, err
		}
		business.SectionIDs = sectionIDs
	}

	if err := s.repo.Update(business); err != nil {
		return nil, hideInternal(err, "Failed to update business")
	}

	s.invalidate(business.ID)
	return business, nil
}

// DeleteBusiness removes the page and tears down everything it owns: every
// section with its assets, then the page's own banner and thumbnail.
func (s *BusinessService) DeleteBusiness(ctx context.Context, id string) error {
	business, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("business with ID %s: %w", id, ErrBusinessNotFound)
		}
		return hideInternal(err, "Failed to load business")
	}

	s.sections.RemoveAll(ctx, business.SectionIDs)
	s.sections.ReleaseSlots(ctx, business.Banner, business.Thumbnail)

	if err := s.repo.Delete(id); err != nil {
		return hideInternal(err, "Failed to delete business")
	}

	s.invalidate(id)
	return nil
}

func (s *BusinessService) GetBusiness(id string) (*models.Business, error) {
	var cached models.Business
	if err := s.cache.GetCachedEntity("business", id, &cached); err == nil {
		return &cached, nil
	}

	business, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business with ID %s: %w", id, ErrBusinessNotFound)
		}
		return nil, hideInternal(err, "Failed to load business")
	}

	_ = s.cache.CacheEntity("business", id, business)
	return business, nil
}

func (s *BusinessService) GetBusinessBySlug(slug string) (*models.Business, error) {
	business, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business with slug %s: %w", slug, ErrBusinessNotFound)
		}
		return nil, hideInternal(err, "Failed to load business")
	}
	return business, nil
}

func (s *BusinessService) GetAllBusinesses() ([]models.Business, error) {
	return s.repo.GetAll()
}

// GetBusinessSections resolves the page's ordered section documents.
func (s *BusinessService) GetBusinessSections(business *models.Business) ([]models.Section, error) {
	return s.sections.Load(business.SectionIDs)
}

func (s *BusinessService) invalidate(id string) {
	if err := s.cache.InvalidateEntity("business", id); err != nil {
		logError(err, "Failed to invalidate business cache", id)
	}
}
