package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求，address_id 为空时使用默认地址
type CreateOrderRequest struct {
	AddressID uint   `json:"address_id"`
	Remark    string `json:"remark"`
}

// CreateOrder 从购物车下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	order, err := h.OrderService.CreateFromCart(uid, service.CreateOrderInput{
		AddressID: req.AddressID,
		Remark:    strings.TrimSpace(req.Remark),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "error.order_cart_empty", nil)
		case errors.Is(err, service.ErrAddressNotFound):
			respondError(c, response.CodeBadRequest, "error.address_not_found", nil)
		case errors.Is(err, service.ErrProductOutOfStock):
			respondError(c, response.CodeBadRequest, "error.product_out_of_stock", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "error.product_not_available", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_create_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"order": order})
}

// GetOrders 获取当前用户订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize, status)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawID := c.Param("id")
	orderID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetForUser(uid, uint(orderID))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// TrackOrder 按订单号查询订单
func (h *Handler) TrackOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.TrackByOrderNo(uid, orderNo)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder 取消订单（仅待支付）
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawID := c.Param("id")
	orderID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, cancelErr := h.OrderService.CancelByUser(uid, uint(orderID))
	if cancelErr != nil {
		respondOrderError(c, cancelErr)
		return
	}
	response.Success(c, gin.H{"order": order})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
	}
}
