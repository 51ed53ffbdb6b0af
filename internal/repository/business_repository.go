package repository

import (
	"content-studio-backend/internal/models"

	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(business *models.Business) error
	Update(business *models.Business) error
	Delete(id string) error
	GetByID(id string) (*models.Business, error)
	GetBySlug(slug string) (*models.Business, error)
	GetAll() ([]models.Business, error)
	ExistsBySlug(slug string) (bool, error)
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(business *models.Business) error {
	return r.db.Create(business).Error
}

func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}

func (r *businessRepository) Delete(id string) error {
	return r.db.Delete(&models.Business{}, "id = ?", id).Error
}

func (r *businessRepository) GetByID(id string) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetBySlug(slug string) (*models.Business, error) {
	var business models.Business
	if err := r.db.Where("slug = ?", slug).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetAll() ([]models.Business, error) {
	var businesses []models.Business
	if err := r.db.Order("created_at DESC").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *businessRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
