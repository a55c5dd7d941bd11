package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/repository"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 获取订单列表 (Admin)
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if rawID := strings.TrimSpace(c.Query("user_id")); rawID != "" {
		if id, err := strconv.ParseUint(rawID, 10, 64); err == nil {
			filter.UserID = uint(id)
		}
	}
	if raw := strings.TrimSpace(c.Query("created_from")); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := strings.TrimSpace(c.Query("created_to")); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &t
		}
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 获取订单详情 (Admin)
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 订单状态流转 (Admin)
// 取消已支付订单时回补库存
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}
	response.Success(c, order)
}
