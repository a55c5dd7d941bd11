package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Unit        string   `json:"unit"`
	Images      []string `json:"images"`
	Variants    []string `json:"variants"`
	Stock       int      `json:"stock"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Unit:        r.Unit,
		Images:      models.StringArray(r.Images),
		Variants:    models.StringArray(r.Variants),
		Stock:       r.Stock,
		IsActive:    active,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		OrderBy:      strings.TrimSpace(c.Query("sort")),
		WithCategory: true,
	}
	if rawID := strings.TrimSpace(c.Query("category_id")); rawID != "" {
		if id, err := strconv.ParseUint(rawID, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func respondProductWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "error.product_slug_exists", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
