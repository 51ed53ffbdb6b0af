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
	productBannerPath    = "products/banner"
	productThumbnailPath = "products/thumbnail"
)

type ProductService struct {
	repo     repository.ProductRepository
	sections *EntitySections
	cache    *cache.Cache
	newID    sections.IDGenerator
}

func NewProductService(repo repository.ProductRepository, entitySections *EntitySections, c *cache.Cache, newID sections.IDGenerator) *ProductService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &ProductService{
		repo:     repo,
		sections: entitySections,
		cache:    c,
		newID:    newID,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}
	if taken, err := s.repo.ExistsBySlug(slug); err != nil {
		return nil, hideInternal(err, "Failed to check product slug")
	} else if taken {
		return nil, ErrSlugTaken
	}

	id := s.newID()

	banner, err := s.sections.StageSlot(ctx, req.Banner, productBannerPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage product banner")
	}
	thumbnail, err := s.sections.StageSlot(ctx, req.Thumbnail, productThumbnailPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage product thumbnail")
	}

	sectionIDs, err := s.sections.Reconcile(ctx, nil, req.Sections.Or(nil))
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Published:   req.Published,
		Price:       req.Price,
		Banner:      banner,
		Thumbnail:   thumbnail,
		SectionIDs:  sectionIDs,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, hideInternal(err, "Failed to create product")
	}

	s.invalidate(product.ID)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, hideInternal(err, "Failed to load product")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Published != nil {
		product.Published = *req.Published
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	product.Banner, err = s.sections.ApplySlot(ctx, product.Banner, req.Banner, productBannerPath, product.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply product banner")
	}
	product.Thumbnail, err = s.sections.ApplySlot(ctx, product.Thumbnail, req.Thumbnail, productThumbnailPath, product.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply product thumbnail")
	}

	if req.Sections.Set {
		sectionIDs, err := s.sections.Reconcile(ctx, product.SectionIDs, req.Sections.Value)
		if err != nil {
			return nil, err
		}
		product.SectionIDs = sectionIDs
	}

	if err := s.repo.Update(product); err != nil {
		return nil, hideInternal(err, "Failed to update product")
	}

	s.invalidate(product.ID)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return hideInternal(err, "Failed to load product")
	}

	s.sections.RemoveAll(ctx, product.SectionIDs)
	s.sections.ReleaseSlots(ctx, product.Banner, product.Thumbnail)

	if err := s.repo.Delete(id); err != nil {
		return hideInternal(err, "Failed to delete product")
	}

	s.invalidate(id)
	return nil
}

func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	var cached models.Product
	if err := s.cache.GetCachedEntity("product", id, &cached); err == nil {
		return &cached, nil
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, hideInternal(err, "Failed to load product")
	}

	_ = s.cache.CacheEntity("product", id, product)
	return product, nil
}

func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with slug %s: %w", slug, ErrProductNotFound)
		}
		return nil, hideInternal(err, "Failed to load product")
	}
	return product, nil
}

func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

func (s *ProductService) GetProductSections(product *models.Product) ([]models.Section, error) {
	return s.sections.Load(product.SectionIDs)
}

func (s *ProductService) invalidate(id string) {
	if err := s.cache.InvalidateEntity("product", id); err != nil {
		logError(err, "Failed to invalidate product cache", id)
	}
}
