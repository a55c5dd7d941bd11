package service

import "errors"

// 服务层哨兵错误，处理器依赖 errors.Is 映射为响应码与 i18n 消息
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartItemInvalid     = errors.New("cart item invalid")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart empty")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductOutOfStock   = errors.New("product out of stock")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category in use")
	ErrSlugExists          = errors.New("slug exists")
	ErrWishlistNotFound    = errors.New("wishlist not found")
	ErrWishlistItemExists  = errors.New("wishlist item exists")
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderStatusInvalid  = errors.New("order status invalid")
	ErrEmailExists         = errors.New("email exists")
	ErrLoginFailed         = errors.New("login failed")
	ErrUserDisabled        = errors.New("user disabled")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordWeak        = errors.New("password too weak")
	ErrPasswordMismatch    = errors.New("password mismatch")
	ErrCaptchaInvalid      = errors.New("captcha invalid")
	ErrQueueUnavailable    = errors.New("queue unavailable")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrUploadInvalid       = errors.New("upload invalid")
)
