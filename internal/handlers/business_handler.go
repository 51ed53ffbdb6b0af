package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/service"
)

type BusinessHandler struct {
	businessService *service.BusinessService
}

func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) Create(c *gin.Context) {
	var req models.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"business": business})
}

func (h *BusinessHandler) Update(c *gin.Context) {
	var req models.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}

func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.businessService.DeleteBusiness(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "business deleted successfully"})
}

func (h *BusinessHandler) GetByID(c *gin.Context) {
	business, err := h.businessService.GetBusiness(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	sections, err := h.businessService.GetBusinessSections(business)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business, "sections": sections})
}

func (h *BusinessHandler) GetBySlug(c *gin.Context) {
	business, err := h.businessService.GetBusinessBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	sections, err := h.businessService.GetBusinessSections(business)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business, "sections": sections})
}

func (h *BusinessHandler) GetAll(c *gin.Context) {
	businesses, err := h.businessService.GetAllBusinesses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}
