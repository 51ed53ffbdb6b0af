package models

// CreateBusinessRequest carries a new business page. Banner and Thumbnail
// accept either a remote URL or an inline upload payload.
type CreateBusinessRequest struct {
	Name        string           `json:"name" binding:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Published   bool             `json:"published"`
	Banner      string           `json:"banner"`
	Thumbnail   string           `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

type UpdateBusinessRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Published   *bool            `json:"published"`
	Banner      *string          `json:"banner"`
	Thumbnail   *string          `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Published   bool             `json:"published"`
	Price       string           `json:"price"`
	Banner      string           `json:"banner"`
	Thumbnail   string           `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Published   *bool            `json:"published"`
	Price       *string          `json:"price"`
	Banner      *string          `json:"banner"`
	Thumbnail   *string          `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

type CreateArticleRequest struct {
	Title       string           `json:"title" binding:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Published   bool             `json:"published"`
	Banner      string           `json:"banner"`
	Thumbnail   string           `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

type UpdateArticleRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Published   *bool            `json:"published"`
	Banner      *string          `json:"banner"`
	Thumbnail   *string          `json:"thumbnail"`
	Sections    OptionalSections `json:"sections"`
}

// CloneSectionRequest duplicates an existing section into a new document.
type CloneSectionRequest struct {
	SectionID string `json:"section_id" binding:"required"`
}
