package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistRequest 心愿单创建/更新请求
type WishlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WishlistItemRequest 心愿单条目请求
type WishlistItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// TransferRequest 转移请求，item_ids 为空表示整单转移
type TransferRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

// GetWishlists 获取当前用户全部心愿单
func (h *Handler) GetWishlists(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"wishlists": h.WishlistService.ListByUser(uid)})
}

// GetWishlist 获取单个心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Get(uid, wishlistID)
	if err != nil {
		respondWishlistError(c, err, "error.wishlist_fetch_failed")
		return
	}
	response.Success(c, gin.H{"wishlist": wishlist})
}

// CreateWishlist 创建心愿单
func (h *Handler) CreateWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	wishlist, err := h.WishlistService.Create(uid, service.CreateWishlistInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.wishlist_name_required", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"wishlist": wishlist})
}

// UpdateWishlist 更新心愿单基本信息
func (h *Handler) UpdateWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	wishlist, err := h.WishlistService.Update(uid, wishlistID, service.CreateWishlistInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		respondWishlistError(c, err, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"wishlist": wishlist})
}

// DeleteWishlist 删除心愿单及全部条目
func (h *Handler) DeleteWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Delete(uid, wishlistID); err != nil {
		respondWishlistError(c, err, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddWishlistItem 添加心愿单条目
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.WishlistService.AddItem(uid, wishlistID, service.AddWishlistItemInput{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "error.product_not_available", nil)
		default:
			respondWishlistError(c, err, "error.wishlist_update_failed")
		}
		return
	}
	response.Success(c, gin.H{"item": item})
}

// DeleteWishlistItem 删除心愿单条目
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	rawID := c.Param("item_id")
	itemID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.WishlistService.RemoveItem(uid, wishlistID, uint(itemID)); err != nil {
		respondWishlistError(c, err, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// TransferWishlist 把心愿单条目转入购物车
// 队列可用时异步执行，返回 transfer_id 供进度查询；否则同步返回汇总
func (h *Handler) TransferWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	// 空请求体等同整单转移
	var req TransferRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	transferID, summary, err := h.WishlistService.StartTransfer(c.Request.Context(), uid, wishlistID, req.ItemIDs)
	if err != nil {
		respondWishlistError(c, err, "error.transfer_failed")
		return
	}
	if summary != nil {
		response.Success(c, gin.H{
			"transfer_id": transferID,
			"async":       false,
			"summary":     summary,
		})
		return
	}
	response.Success(c, gin.H{
		"transfer_id": transferID,
		"async":       true,
	})
}

// GetTransferState 查询转移进度
func (h *Handler) GetTransferState(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	transferID := strings.TrimSpace(c.Param("transfer_id"))
	if transferID == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	state, err := h.WishlistService.GetTransferState(c.Request.Context(), uid, transferID)
	if err != nil {
		if errors.Is(err, service.ErrTransferNotFound) {
			respondError(c, response.CodeNotFound, "error.transfer_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.transfer_fetch_failed", err)
		return
	}
	response.Success(c, state)
}

func parseWishlistID(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	wishlistID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || wishlistID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(wishlistID), true
}

func respondWishlistError(c *gin.Context, err error, fallbackKey string) {
	if errors.Is(err, service.ErrWishlistNotFound) {
		respondError(c, response.CodeNotFound, "error.wishlist_not_found", nil)
		return
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}
