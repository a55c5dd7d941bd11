package public

import (
	"errors"
	"strconv"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址请求
type AddressRequest struct {
	Name           string `json:"name"`
	Recipient      string `json:"recipient"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	AdditionalInfo string `json:"additional_info"`
	IsDefault      bool   `json:"is_default"`
}

func (r AddressRequest) toServiceInput() service.AddressInput {
	return service.AddressInput{
		Name:           r.Name,
		Recipient:      r.Recipient,
		Phone:          r.Phone,
		Address:        r.Address,
		Neighborhood:   r.Neighborhood,
		City:           r.City,
		State:          r.State,
		PostalCode:     r.PostalCode,
		Country:        r.Country,
		AdditionalInfo: r.AdditionalInfo,
		IsDefault:      r.IsDefault,
	}
}

// GetAddresses 获取地址列表，默认地址排在最前
func (h *Handler) GetAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"addresses": h.AddressService.ListByUser(uid)})
}

// GetDefaultAddress 获取默认地址，无默认时回退最近创建
func (h *Handler) GetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"address": h.AddressService.GetDefault(uid)})
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Create(uid, req.toServiceInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"address": address})
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Update(uid, addressID, req.toServiceInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"address": address})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	if err := h.AddressService.SetDefault(uid, addressID); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteAddress 删除地址
// 删除默认地址时由最近创建的剩余地址接任默认
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	if err := h.AddressService.Delete(uid, addressID); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseAddressID(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	addressID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(addressID), true
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.address_invalid", nil)
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "error.address_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.address_update_failed", err)
	}
}
