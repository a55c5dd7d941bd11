package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 系统设置键
const (
	SettingKeySiteConfig = "site_config"
)

// 异步任务类型
const (
	TaskWishlistTransfer = "wishlist:transfer"
	TaskCartPurge        = "cart:purge_stale"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 心愿单转移状态
const (
	TransferStatusPending = "pending"
	TransferStatusRunning = "running"
	TransferStatusDone    = "done"
	TransferStatusFailed  = "failed"
)

// 验证码场景
const (
	CaptchaSceneLogin = "login"
)

// 通知偏好键（前端开关项，值均为布尔）
const (
	NotifyKeyOrderUpdates = "order_updates"
	NotifyKeyPromotions   = "promotions"
	NotifyKeyNewsletter   = "newsletter"
	NotifyKeyStockAlerts  = "stock_alerts"
)

// 购物车请求头：游客购物车令牌
const HeaderCartToken = "X-Cart-Token"
