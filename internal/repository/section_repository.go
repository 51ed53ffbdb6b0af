package repository

import (
	"content-studio-backend/internal/models"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *models.Section) error
	Update(section *models.Section) error
	GetByID(id string) (*models.Section, error)
	// GetByIDAny resolves a section regardless of its soft-delete state.
	GetByIDAny(id string) (*models.Section, error)
	GetByIDs(ids []string) ([]models.Section, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *models.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) Update(section *models.Section) error {
	// Save also persists the soft-delete transition, so removals go through
	// here rather than through gorm's Delete.
	return r.db.Unscoped().Save(section).Error
}

func (r *sectionRepository) GetByID(id string) (*models.Section, error) {
	var section models.Section
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) GetByIDAny(id string) (*models.Section, error) {
	var section models.Section
	if err := r.db.Unscoped().First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) GetByIDs(ids []string) ([]models.Section, error) {
	if len(ids) == 0 {
		return []models.Section{}, nil
	}

	var sections []models.Section
	if err := r.db.Where("id IN ?", ids).Find(&sections).Error; err != nil {
		return nil, err
	}

	// Preserve the owning entity's ordering.
	byID := make(map[string]models.Section, len(sections))
	for _, section := range sections {
		byID[section.ID] = section
	}

	ordered := make([]models.Section, 0, len(sections))
	for _, id := range ids {
		if section, ok := byID[id]; ok {
			ordered = append(ordered, section)
		}
	}
	return ordered, nil
}
