package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/service"
)

type SectionHandler struct {
	sectionService *service.SectionService
}

func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

func (h *SectionHandler) GetByID(c *gin.Context) {
	section, err := h.sectionService.GetSection(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

func (h *SectionHandler) Clone(c *gin.Context) {
	var req models.CloneSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clone, err := h.sectionService.CloneSectionByID(c.Request.Context(), req.SectionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"section": clone})
}

func (h *SectionHandler) Delete(c *gin.Context) {
	if _, err := h.sectionService.RemoveSectionByID(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "section deleted successfully"})
}

// GetAvailableTypes lists the registered section discriminants so admin
// interfaces can build pickers without hardcoding them.
func (h *SectionHandler) GetAvailableTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": models.SectionTypes()})
}
