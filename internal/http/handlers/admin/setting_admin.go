package admin

import (
	"strings"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSettings 按 key 获取设置 (Admin)
func (h *Handler) GetSettings(c *gin.Context) {
	key := strings.TrimSpace(c.DefaultQuery("key", constants.SettingKeySiteConfig))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSettings 写入设置 (Admin)
func (h *Handler) UpdateSettings(c *gin.Context) {
	key := strings.TrimSpace(c.DefaultQuery("key", constants.SettingKeySiteConfig))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var value map[string]interface{}
	if err := c.ShouldBindJSON(&value); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	saved, err := h.SettingService.Update(key, value)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	requestLog(c).Infow("setting_updated", "key", key)
	response.Success(c, gin.H{"key": key, "value": saved})
}
