package repository

import (
	"content-studio-backend/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	Update(article *models.Article) error
	Delete(id string) error
	GetByID(id string) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetAll() ([]models.Article, error)
	ExistsBySlug(slug string) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(id string) error {
	return r.db.Delete(&models.Article{}, "id = ?", id).Error
}

func (r *articleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetAll() ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
