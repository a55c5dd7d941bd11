package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                  // 分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	Name        string         `gorm:"not null" json:"name"`                               // 商品名称
	Description string         `gorm:"type:text" json:"description"`                       // 商品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Unit        string         `gorm:"type:varchar(20);default:''" json:"unit"`            // 计量单位（如 kg、个、盒）
	Images      StringArray    `gorm:"type:json" json:"images"`                            // 图片数组
	Variants    StringArray    `gorm:"type:json" json:"variants"`                          // 可选规格（如 500g / 1kg）
	Stock       int            `gorm:"not null;default:0" json:"stock"`                    // 库存数量
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// OutOfStock 库存是否售罄
func (p *Product) OutOfStock() bool {
	return p == nil || p.Stock <= 0
}
