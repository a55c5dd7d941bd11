package admin

import (
	"strconv"
	"strings"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateUserStatusRequest 用户状态变更请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminUsers 获取用户列表 (Admin)
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	users, total, err := h.UserRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, adminUserView(&user))
	}
	response.SuccessWithPage(c, views, response.BuildPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情 (Admin)
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	response.Success(c, adminUserView(user))
}

// UpdateAdminUserStatus 启用/禁用用户 (Admin)
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "error.user_status_invalid", nil)
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	if err := h.UserRepo.UpdateFields(user.ID, map[string]interface{}{"status": status}); err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	requestLog(c).Infow("admin_user_status_updated", "user_id", user.ID, "status", status)
	user.Status = status
	response.Success(c, adminUserView(user))
}

func adminUserView(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"phone":         user.Phone,
		"locale":        user.Locale,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
}
