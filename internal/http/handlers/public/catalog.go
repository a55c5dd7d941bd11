package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/repository"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// GetConfig 获取站点公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	defaults := map[string]interface{}{
		"site_name": "沐禾商城",
		"languages": []string{constants.LocaleZhCN, constants.LocaleEnUS},
		"currency":  "CNY",
	}
	data, err := h.SettingService.GetSiteConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	data["captcha_enabled"] = h.CaptchaService.Enabled()
	response.Success(c, data)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	response.Success(c, gin.H{"categories": h.CategoryService.List()})
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		OrderBy:      strings.TrimSpace(c.Query("sort")),
		OnlyActive:   true,
		InStockOnly:  c.Query("in_stock") == "true",
		WithCategory: true,
	}
	if rawID := strings.TrimSpace(c.Query("category_id")); rawID != "" {
		if id, err := strconv.ParseUint(rawID, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, total := h.ProductService.List(filter)
	response.SuccessWithPage(c, gin.H{"products": products}, response.BuildPagination(page, pageSize, total))
}

// GetProductBySlug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"product": product})
}
