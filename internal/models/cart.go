package models

import "time"

// Cart 购物车表
// 登录用户以 user_id 定位，游客以本地持久化的随机 token 定位
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Token     string         `gorm:"uniqueIndex;not null" json:"-"`    // 游客令牌
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`   // 用户ID（游客为空）
	CreatedAt time.Time      `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`          // 更新时间（用于游客购物车清理）

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项
// 同一购物车内 (product_id, variant) 组合唯一，重复加购累加数量
// 硬删除，软删除行会占用唯一索引导致无法重新加购
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                          // 主键
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_product_variant" json:"cart_id"`  // 购物车ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_product_variant" json:"product_id"` // 商品ID
	Variant   string         `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_cart_product_variant" json:"variant"` // 规格
	Name      string         `gorm:"not null" json:"name"`                                          // 商品名称快照
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`            // 单价快照
	Quantity  int            `gorm:"not null" json:"quantity"`                                      // 数量
	Unit      string         `gorm:"type:varchar(20);default:''" json:"unit"`                       // 计量单位快照
	Image     string         `gorm:"type:varchar(500)" json:"image"`                                // 图片快照
	SKU       string         `gorm:"type:varchar(100);default:''" json:"sku"`                       // SKU 编码
	CreatedAt time.Time      `json:"created_at"`                                                    // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
