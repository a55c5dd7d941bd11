package public

import (
	"errors"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileUpdateRequest 资料更新请求，缺失字段表示不修改
type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatar_url"`
	Locale      *string `json:"locale"`
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondProfileError(c, err, "error.profile_fetch_failed")
		return
	}
	response.Success(c, gin.H{"user": profileView(user)})
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, service.ProfileInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		AvatarURL:   req.AvatarURL,
		Locale:      req.Locale,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondProfileError(c, err, "error.profile_update_failed")
		return
	}
	response.Success(c, gin.H{"user": profileView(user)})
}

// GetNotificationPrefs 获取通知偏好
func (h *Handler) GetNotificationPrefs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	prefs, err := h.UserAuthService.GetNotificationPrefs(uid)
	if err != nil {
		respondProfileError(c, err, "error.profile_fetch_failed")
		return
	}
	response.Success(c, gin.H{"preferences": prefs})
}

// UpdateNotificationPrefs 浅合并更新通知偏好
// 仅提交的键被覆盖，其余键保留原值
func (h *Handler) UpdateNotificationPrefs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var partial map[string]bool
	if err := c.ShouldBindJSON(&partial); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	prefs, err := h.UserAuthService.UpdateNotificationPrefs(uid, partial)
	if err != nil {
		respondProfileError(c, err, "error.profile_update_failed")
		return
	}
	response.Success(c, gin.H{"preferences": prefs})
}

func respondProfileError(c *gin.Context, err error, fallbackKey string) {
	if errors.Is(err, service.ErrUserNotFound) {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}

func profileView(user *models.User) gin.H {
	return gin.H{
		"id":                 user.ID,
		"email":              user.Email,
		"display_name":       user.DisplayName,
		"phone":              user.Phone,
		"avatar_url":         user.AvatarURL,
		"locale":             user.Locale,
		"status":             user.Status,
		"last_login_at":      user.LastLoginAt,
		"notification_prefs": user.NotificationPrefs,
		"created_at":         user.CreatedAt,
	}
}
