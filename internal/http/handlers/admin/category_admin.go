package admin

import (
	"errors"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	response.Success(c, h.CategoryService.List())
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有商品挂载时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeConflict, "error.category_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "error.category_slug_exists", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
