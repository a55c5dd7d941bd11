package public

import (
	"errors"
	"strings"
	"time"

	"github.com/muhe-mall/internal/constants"
	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/i18n"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	RememberMe  bool   `json:"remember_me"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetCaptcha 获取图片验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// UserRegister 用户注册
// 注册成功即登录，并把游客购物车并入新账号
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyLoginCaptcha(c, req.CaptchaID, req.CaptchaCode) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "error.email_exists", nil)
		case errors.Is(err, service.ErrPasswordWeak):
			respondPasswordWeak(c, err)
		default:
			respondError(c, response.CodeInternal, "error.register_failed", err)
		}
		return
	}

	h.mergeGuestCart(c, user.ID)
	respondAuthSuccess(c, user, token, expiresAt)
}

// UserLogin 用户登录
// 登录成功后把请求头令牌对应的游客购物车并入账号
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyLoginCaptcha(c, req.CaptchaID, req.CaptchaCode) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.LoginWithRememberMe(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		case errors.Is(err, service.ErrLoginFailed):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeUnauthorized, "error.user_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}

	h.mergeGuestCart(c, user.ID)
	respondAuthSuccess(c, user, token, expiresAt)
}

// UserLogout 注销全部会话
func (h *Handler) UserLogout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(uid); err != nil {
		respondError(c, response.CodeInternal, "error.logout_failed", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// UserChangePassword 登录态修改密码
func (h *Handler) UserChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, response.CodeBadRequest, "error.password_incorrect", nil)
		case errors.Is(err, service.ErrPasswordWeak):
			respondPasswordWeak(c, err)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.change_password_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// verifyLoginCaptcha 登录场景验证码校验，未启用时直接放行
func (h *Handler) verifyLoginCaptcha(c *gin.Context, captchaID, captchaCode string) bool {
	if !h.CaptchaService.Enabled() {
		return true
	}
	if strings.TrimSpace(captchaID) == "" || strings.TrimSpace(captchaCode) == "" {
		respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		return false
	}
	if err := h.CaptchaService.Verify(captchaID, captchaCode); err != nil {
		respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		return false
	}
	return true
}

// mergeGuestCart 并入游客购物车，失败只记录日志不影响登录结果
func (h *Handler) mergeGuestCart(c *gin.Context, userID uint) {
	guestToken := strings.TrimSpace(c.GetHeader(constants.HeaderCartToken))
	if guestToken == "" {
		return
	}
	if err := h.CartService.MergeGuestCart(userID, guestToken); err != nil {
		requestLog(c).Warnw("guest_cart_merge_failed", "user_id", userID, "error", err)
	}
}

func respondPasswordWeak(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
}

func respondAuthSuccess(c *gin.Context, user *models.User, token string, expiresAt time.Time) {
	response.Success(c, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"locale":       user.Locale,
		},
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}
