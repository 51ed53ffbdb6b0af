package models

import (
	"time"

	"gorm.io/gorm"
)

// Business is a company page composed of sections plus its own direct asset
// slots. The ordered SectionIDs list is the source of truth for which
// sections the page owns; every id must resolve to a live Section.
type Business struct {
	ID        string         `gorm:"primarykey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	Published   bool   `gorm:"default:false" json:"published"`

	Banner    AssetSlot `gorm:"type:jsonb" json:"banner"`
	Thumbnail AssetSlot `gorm:"type:jsonb" json:"thumbnail"`

	SectionIDs StringList `gorm:"type:jsonb" json:"section_ids"`
}

// Product is a product page; same section model as Business.
type Product struct {
	ID        string         `gorm:"primarykey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	Published   bool   `gorm:"default:false" json:"published"`
	Price       string `json:"price"`

	Banner    AssetSlot `gorm:"type:jsonb" json:"banner"`
	Thumbnail AssetSlot `gorm:"type:jsonb" json:"thumbnail"`

	SectionIDs StringList `gorm:"type:jsonb" json:"section_ids"`
}

// Article is an editorial page; same section model as Business.
type Article struct {
	ID        string         `gorm:"primarykey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description string     `json:"description"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	Banner    AssetSlot `gorm:"type:jsonb" json:"banner"`
	Thumbnail AssetSlot `gorm:"type:jsonb" json:"thumbnail"`

	SectionIDs StringList `gorm:"type:jsonb" json:"section_ids"`
}
