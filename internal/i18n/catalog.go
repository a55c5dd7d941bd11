package i18n

import "github.com/muhe-mall/internal/constants"

var catalog = map[string]map[string]string{
	constants.LocaleZhCN: {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "请先登录",
		"error.forbidden":               "无权访问",
		"error.not_found":               "资源不存在",
		"error.internal":                "服务器内部错误",
		"error.auth_header_missing":     "缺少认证信息",
		"error.auth_header_invalid":     "认证信息格式错误",
		"error.token_invalid":           "登录状态无效，请重新登录",
		"error.token_revoked":           "登录状态已失效，请重新登录",
		"error.jwt_secret_missing":      "服务端未配置签名密钥",
		"error.user_disabled":           "账号已被禁用",
		"error.user_id_invalid":         "用户标识无效",
		"error.user_id_type_invalid":    "用户标识类型错误",
		"error.email_invalid":           "邮箱格式不正确",
		"error.email_exists":            "邮箱已被注册",
		"error.password_weak":           "密码强度不足",
		"error.login_failed":            "邮箱或密码错误",
		"error.login_too_many":          "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":            "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":  "限流服务不可用",
		"error.captcha_required":        "请完成验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.cart_token_missing":      "缺少购物车令牌",
		"error.cart_not_found":          "购物车不存在",
		"error.cart_item_invalid":       "购物车商品无效",
		"error.cart_item_not_found":     "购物车商品不存在",
		"error.cart_update_failed":      "购物车更新失败",
		"error.cart_fetch_failed":       "购物车获取失败",
		"error.product_not_available":   "商品已下架或不存在",
		"error.product_out_of_stock":    "商品库存不足",
		"error.wishlist_not_found":      "心愿单不存在",
		"error.wishlist_name_required":  "心愿单名称不能为空",
		"error.wishlist_item_invalid":   "心愿单商品无效",
		"error.wishlist_update_failed":  "心愿单更新失败",
		"error.transfer_not_found":      "转移任务不存在",
		"error.transfer_failed":         "心愿单转移失败",
		"error.address_not_found":       "收货地址不存在",
		"error.address_invalid":         "收货地址信息不完整",
		"error.address_update_failed":   "收货地址更新失败",
		"error.order_not_found":         "订单不存在",
		"error.order_create_failed":     "订单创建失败",
		"error.order_cart_empty":        "购物车为空，无法结算",
		"error.order_status_invalid":    "订单状态不允许该操作",
		"error.profile_update_failed":   "资料更新失败",
		"error.prefs_update_failed":     "通知偏好更新失败",
		"error.category_not_found":      "分类不存在",
		"error.category_slug_exists":    "分类标识已存在",
		"error.category_in_use":         "分类下仍有商品，无法删除",
		"error.product_not_found":       "商品不存在",
		"error.product_slug_exists":     "商品标识已存在",
		"error.product_invalid":         "商品信息不完整",
		"error.upload_failed":           "文件上传失败",
		"error.upload_type_invalid":     "文件类型不允许",
		"error.upload_too_large":        "文件大小超出限制",
		"error.config_fetch_failed":     "站点配置获取失败",
		"error.setting_update_failed":   "站点配置更新失败",
		"error.queue_unavailable":       "异步队列不可用",
		"error.password_incorrect":      "当前密码不正确",
		"error.admin_id_invalid":        "管理员标识无效",
		"error.admin_id_type_invalid":   "管理员标识类型错误",
		"error.admin_login_invalid":     "用户名或密码错误",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.register_failed":         "注册失败",
		"error.logout_failed":           "退出登录失败",
		"error.change_password_failed":  "密码修改失败",
		"error.password_min_length":     "密码长度不能少于 %d 位",
		"error.password_require_upper":  "密码需包含大写字母",
		"error.password_require_lower":  "密码需包含小写字母",
		"error.password_require_number": "密码需包含数字",
		"error.profile_fetch_failed":    "资料获取失败",
		"error.product_fetch_failed":    "商品获取失败",
		"error.order_fetch_failed":      "订单获取失败",
		"error.wishlist_fetch_failed":   "心愿单获取失败",
		"error.transfer_fetch_failed":   "转移进度获取失败",
		"error.user_fetch_failed":       "用户获取失败",
		"error.user_not_found":          "用户不存在",
		"error.user_status_invalid":     "用户状态不合法",
		"error.setting_fetch_failed":    "设置获取失败",
		"error.save_failed":             "保存失败",
		"error.delete_failed":           "删除失败",
		"error.file_missing":            "缺少上传文件",
	},
	constants.LocaleEnUS: {
		"error.bad_request":             "invalid request",
		"error.unauthorized":            "please sign in",
		"error.forbidden":               "permission denied",
		"error.not_found":               "resource not found",
		"error.internal":                "internal server error",
		"error.auth_header_missing":     "missing authorization header",
		"error.auth_header_invalid":     "malformed authorization header",
		"error.token_invalid":           "invalid session, please sign in again",
		"error.token_revoked":           "session revoked, please sign in again",
		"error.jwt_secret_missing":      "signing key not configured",
		"error.user_disabled":           "account disabled",
		"error.user_id_invalid":         "invalid user id",
		"error.user_id_type_invalid":    "invalid user id type",
		"error.email_invalid":           "invalid email address",
		"error.email_exists":            "email already registered",
		"error.password_weak":           "password too weak",
		"error.login_failed":            "wrong email or password",
		"error.login_too_many":          "too many login attempts, retry in %d seconds",
		"error.rate_limited":            "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":  "rate limiter unavailable",
		"error.captcha_required":        "captcha required",
		"error.captcha_invalid":         "wrong captcha",
		"error.cart_token_missing":      "missing cart token",
		"error.cart_not_found":          "cart not found",
		"error.cart_item_invalid":       "invalid cart item",
		"error.cart_item_not_found":     "cart item not found",
		"error.cart_update_failed":      "cart update failed",
		"error.cart_fetch_failed":       "failed to load cart",
		"error.product_not_available":   "product unavailable",
		"error.product_out_of_stock":    "product out of stock",
		"error.wishlist_not_found":      "wishlist not found",
		"error.wishlist_name_required":  "wishlist name required",
		"error.wishlist_item_invalid":   "invalid wishlist item",
		"error.wishlist_update_failed":  "wishlist update failed",
		"error.transfer_not_found":      "transfer not found",
		"error.transfer_failed":         "wishlist transfer failed",
		"error.address_not_found":       "address not found",
		"error.address_invalid":         "incomplete address",
		"error.address_update_failed":   "address update failed",
		"error.order_not_found":         "order not found",
		"error.order_create_failed":     "failed to create order",
		"error.order_cart_empty":        "cart is empty",
		"error.order_status_invalid":    "operation not allowed in current order status",
		"error.profile_update_failed":   "profile update failed",
		"error.prefs_update_failed":     "notification preferences update failed",
		"error.category_not_found":      "category not found",
		"error.category_slug_exists":    "category slug already exists",
		"error.category_in_use":         "category still has products",
		"error.product_not_found":       "product not found",
		"error.product_slug_exists":     "product slug already exists",
		"error.product_invalid":         "incomplete product",
		"error.upload_failed":           "upload failed",
		"error.upload_type_invalid":     "file type not allowed",
		"error.upload_too_large":        "file too large",
		"error.config_fetch_failed":     "failed to load site config",
		"error.setting_update_failed":   "failed to update site config",
		"error.queue_unavailable":       "task queue unavailable",
		"error.password_incorrect":      "current password incorrect",
		"error.admin_id_invalid":        "invalid admin id",
		"error.admin_id_type_invalid":   "invalid admin id type",
		"error.admin_login_invalid":     "wrong username or password",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.register_failed":         "registration failed",
		"error.logout_failed":           "logout failed",
		"error.change_password_failed":  "failed to change password",
		"error.password_min_length":     "password must be at least %d characters",
		"error.password_require_upper":  "password must contain an uppercase letter",
		"error.password_require_lower":  "password must contain a lowercase letter",
		"error.password_require_number": "password must contain a digit",
		"error.profile_fetch_failed":    "failed to load profile",
		"error.product_fetch_failed":    "failed to load products",
		"error.order_fetch_failed":      "failed to load orders",
		"error.wishlist_fetch_failed":   "failed to load wishlists",
		"error.transfer_fetch_failed":   "failed to load transfer progress",
		"error.user_fetch_failed":       "failed to load users",
		"error.user_not_found":          "user not found",
		"error.user_status_invalid":     "invalid user status",
		"error.setting_fetch_failed":    "failed to load settings",
		"error.save_failed":             "save failed",
		"error.delete_failed":           "delete failed",
		"error.file_missing":            "missing upload file",
	},
}
