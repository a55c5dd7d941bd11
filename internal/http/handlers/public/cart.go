package public

import (
	"errors"
	"strconv"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 购物车项数量覆写请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车详情
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, h.CartService.GetDetail(getCartRef(c)))
}

// AddCartItem 加购
// 游客首次加购时响应携带令牌，客户端后续通过请求头回传
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ref := getCartRef(c)
	cart, err := h.CartService.AddItem(ref, service.AddCartItemInput{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemInvalid):
			respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "error.product_not_available", nil)
		default:
			respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		}
		return
	}
	if ref.UserID == 0 {
		ref.Token = cart.Token
	}
	response.Success(c, h.CartService.GetDetail(ref))
}

// UpdateCartItem 覆写购物车项数量，0 及以下删除该项
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ref := getCartRef(c)
	if err := h.CartService.UpdateItemQuantity(ref, itemID, req.Quantity); err != nil {
		respondCartItemError(c, err)
		return
	}
	response.Success(c, h.CartService.GetDetail(ref))
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}
	ref := getCartRef(c)
	if err := h.CartService.RemoveItem(ref, itemID); err != nil {
		respondCartItemError(c, err)
		return
	}
	response.Success(c, h.CartService.GetDetail(ref))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	ref := getCartRef(c)
	if err := h.CartService.Clear(ref); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	response.Success(c, h.CartService.GetDetail(ref))
}

func parseCartItemID(c *gin.Context) (uint, bool) {
	rawID := c.Param("item_id")
	itemID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return 0, false
	}
	return uint(itemID), true
}

func respondCartItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCartItemInvalid):
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
	case errors.Is(err, service.ErrCartItemNotFound):
		respondError(c, response.CodeNotFound, "error.cart_item_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
	}
}
