package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/repository"
	"content-studio-backend/internal/sections"
	"content-studio-backend/pkg/cache"
	"content-studio-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	articleBannerPath    = "articles/banner"
	articleThumbnailPath = "articles/thumbnail"
)

type ArticleService struct {
	repo     repository.ArticleRepository
	sections *EntitySections
	cache    *cache.Cache
	newID    sections.IDGenerator
}

func NewArticleService(repo repository.ArticleRepository, entitySections *EntitySections, c *cache.Cache, newID sections.IDGenerator) *ArticleService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &ArticleService{
		repo:     repo,
		sections: entitySections,
		cache:    c,
		newID:    newID,
	}
}

func (s *ArticleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}
	if taken, err := s.repo.ExistsBySlug(slug); err != nil {
		return nil, hideInternal(err, "Failed to check article slug")
	} else if taken {
		return nil, ErrSlugTaken
	}

	id := s.newID()

	banner, err := s.sections.StageSlot(ctx, req.Banner, articleBannerPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage article banner")
	}
	thumbnail, err := s.sections.StageSlot(ctx, req.Thumbnail, articleThumbnailPath, id)
	if err != nil {
		return nil, hideInternal(err, "Failed to stage article thumbnail")
	}

	sectionIDs, err := s.sections.Reconcile(ctx, nil, req.Sections.Or(nil))
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:          id,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Published:   req.Published,
		Banner:      banner,
		Thumbnail:   thumbnail,
		SectionIDs:  sectionIDs,
	}
	if req.Published {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	if err := s.repo.Create(article); err != nil {
		return nil, hideInternal(err, "Failed to create article")
	}

	s.invalidate(article.ID)
	return article, nil
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id string, req models.UpdateArticleRequest) (*models.Article, error) {
	if req.Sections.Set && req.Sections.Null {
		return nil, ErrSectionsRequired
	}

	article, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with ID %s: %w", id, ErrArticleNotFound)
		}
		return nil, hideInternal(err, "Failed to load article")
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Published != nil {
		// First transition to published stamps the publication time.
		if *req.Published && !article.Published && article.PublishedAt == nil {
			now := time.Now().UTC()
			article.PublishedAt = &now
		}
		article.Published = *req.Published
	}

	article.Banner, err = s.sections.ApplySlot(ctx, article.Banner, req.Banner, articleBannerPath, article.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply article banner")
	}
	article.Thumbnail, err = s.sections.ApplySlot(ctx, article.Thumbnail, req.Thumbnail, articleThumbnailPath, article.ID)
	if err != nil {
		return nil, hideInternal(err, "Failed to apply article thumbnail")
	}

	if req.Sections.Set {
		sectionIDs, err := s.sections.Reconcile(ctx, article.SectionIDs, req.Sections.Value)
		if err != nil {
			return nil, err
		}
		article.SectionIDs = sectionIDs
	}

	if err := s.repo.Update(article); err != nil {
		return nil, hideInternal(err, "Failed to update article")
	}

	s.invalidate(article.ID)
	return article, nil
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	article, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("article with ID %s: %w", id, ErrArticleNotFound)
		}
		return hideInternal(err, "Failed to load article")
	}

	s.sections.RemoveAll(ctx, article.SectionIDs)
	s.sections.ReleaseSlots(ctx, article.Banner, article.Thumbnail)

	if err := s.repo.Delete(id); err != nil {
		return hideInternal(err, "Failed to delete article")
	}

	s.invalidate(id)
	return nil
}

func (s *ArticleService) GetArticle(id string) (*models.Article, error) {
	var cached models.Article
	if err := s.cache.GetCachedEntity("article", id, &cached); err == nil {
		return &cached, nil
	}

	article, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with ID %s: %w", id, ErrArticleNotFound)
		}
		return nil, hideInternal(err, "Failed to load article")
	}

	_ = s.cache.CacheEntity("article", id, article)
	return article, nil
}

func (s *ArticleService) GetArticleBySlug(slug string) (*models.Article, error) {
	article, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with slug %s: %w", slug, ErrArticleNotFound)
		}
		return nil, hideInternal(err, "Failed to load article")
	}
	return article, nil
}

func (s *ArticleService) GetAllArticles() ([]models.Article, error) {
	return s.repo.GetAll()
}

func (s *ArticleService) GetArticleSections(article *models.Article) ([]models.Section, error) {
	return s.sections.Load(article.SectionIDs)
}

func (s *ArticleService) invalidate(id string) {
	if err := s.cache.InvalidateEntity("article", id); err != nil {
		logError(err, "Failed to invalidate article cache", id)
	}
}
