package models

import (
	"time"

	"gorm.io/gorm"
)

// Wishlist 心愿单表
// 一个用户可拥有多个命名心愿单，删除心愿单时级联删除其下条目
type Wishlist struct {
	ID          uint           `gorm:"primarykey" json:"id"`          // 主键
	UserID      uint           `gorm:"not null;index" json:"user_id"` // 用户ID
	Name        string         `gorm:"not null" json:"name"`          // 心愿单名称
	Description string         `gorm:"type:text" json:"description"`  // 描述
	Icon        string         `gorm:"type:varchar(100)" json:"icon"` // 图标
	CreatedAt   time.Time      `json:"created_at"`                    // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                // 软删除时间

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"` // 条目列表
}

// TableName 指定表名
func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem 心愿单条目
type WishlistItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                               // 主键
	WishlistID uint           `gorm:"not null;index" json:"wishlist_id"`                  // 心愿单ID
	ProductID  uint           `gorm:"not null;index" json:"product_id"`                   // 商品ID
	Variant    string         `gorm:"type:varchar(100);not null;default:''" json:"variant"` // 规格
	Name       string         `gorm:"not null" json:"name"`                               // 商品名称快照
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	Image      string         `gorm:"type:varchar(500)" json:"image"`                     // 图片快照
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`                 // 数量
	Unit       string         `gorm:"type:varchar(20);default:''" json:"unit"`            // 计量单位快照
	CreatedAt  time.Time      `json:"created_at"`                                         // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
