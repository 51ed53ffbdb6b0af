package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SectionType string

const (
	SectionTypeCards       SectionType = "cards"
	SectionTypeBanner      SectionType = "banner"
	SectionTypeTable       SectionType = "table"
	SectionTypeAttachments SectionType = "attachments"
	SectionTypeImage       SectionType = "image"
	SectionTypeGrids       SectionType = "grids"
	SectionTypeGallery     SectionType = "gallery"
	SectionTypeAccordion   SectionType = "accordion"
)

// SectionTypes lists every recognised discriminant.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionTypeCards,
		SectionTypeBanner,
		SectionTypeTable,
		SectionTypeAttachments,
		SectionTypeImage,
		SectionTypeGrids,
		SectionTypeGallery,
		SectionTypeAccordion,
	}
}

type SectionStatus string

const (
	SectionStatusActive SectionStatus = "active"
	SectionStatusDraft  SectionStatus = "draft"
)

// Section is a typed content block owned by a content entity. Exactly one
// payload field matching Type is populated; payloads for any other
// discriminant are ignored.
type Section struct {
	ID        string         `gorm:"primarykey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Type        SectionType   `gorm:"type:varchar(32);not null;index" json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
	Style       string        `json:"style"`
	Position    int           `gorm:"default:0" json:"position"`
	Status      SectionStatus `gorm:"type:varchar(16);default:'active'" json:"status"`

	Payload SectionPayload `gorm:"type:jsonb" json:"payload"`
}

// SectionPayload is the one-of-eight variant body of a Section.
type SectionPayload struct {
	Cards       *CardsPayload       `json:"cards,omitempty"`
	Banner      *BannerPayload      `json:"banner,omitempty"`
	Table       *TablePayload       `json:"table,omitempty"`
	Attachments *AttachmentsPayload `json:"attachments,omitempty"`
	Image       *ImagePayload       `json:"image,omitempty"`
	Grids       *GridsPayload       `json:"grids,omitempty"`
	Gallery     *GalleryPayload     `json:"gallery,omitempty"`
	Accordion   *AccordionPayload   `json:"accordion,omitempty"`
}

func (p *SectionPayload) Scan(value interface{}) error {
	if value == nil {
		*p = SectionPayload{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan SectionPayload")
	}

	return json.Unmarshal(bytes, p)
}

func (p SectionPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

type CardsPayload struct {
	Cards []Card `json:"cards"`
}

type BannerPayload struct {
	Text    string    `json:"text"`
	Link    string    `json:"link"`
	Picture AssetSlot `json:"picture"`
}

type TablePayload struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

type TableRow struct {
	Cells []string `json:"cells"`
}

type AttachmentsPayload struct {
	Attachments []Attachment `json:"attachments"`
}

type ImagePayload struct {
	Image AssetSlot `json:"image"`
}

type GridsPayload struct {
	Grids []Grid `json:"grids"`
}

type GalleryPayload struct {
	Items []GalleryItem `json:"items"`
}

type AccordionPayload struct {
	Items []AccordionItem `json:"items"`
}
