package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/service"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article deleted successfully"})
}

func (h *ArticleHandler) GetByID(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	sections, err := h.articleService.GetArticleSections(article)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "sections": sections})
}

func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.articleService.GetArticleBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	sections, err := h.articleService.GetArticleSections(article)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "sections": sections})
}

func (h *ArticleHandler) GetAll(c *gin.Context) {
	articles, err := h.articleService.GetAllArticles()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}
