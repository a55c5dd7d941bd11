package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID        uint   `gorm:"primarykey" json:"id"`                            // 主键
	OrderNo   string `gorm:"size:64;uniqueIndex;not null" json:"order_no"`    // 订单号
	UserID    uint   `gorm:"not null;index" json:"user_id"`                   // 用户ID
	Status    string `gorm:"size:20;default:pending;index" json:"status"`     // 状态 pending/paid/shipped/delivered/canceled
	Subtotal  Money  `gorm:"type:decimal(20,2);not null" json:"subtotal"`     // 小计金额
	ItemCount int    `gorm:"not null;default:0" json:"item_count"`            // 商品件数

	// 地址快照，下单时从收货地址复制，后续地址变更不影响历史订单
	Recipient      string `gorm:"size:100;not null" json:"recipient"`  // 收件人
	Phone          string `gorm:"size:30" json:"phone"`                // 电话
	Address        string `gorm:"type:text" json:"address"`            // 街道地址
	Neighborhood   string `gorm:"size:100" json:"neighborhood"`        // 街区/小区
	City           string `gorm:"size:100" json:"city"`                // 城市
	State          string `gorm:"size:100" json:"state"`               // 省/州
	PostalCode     string `gorm:"size:20" json:"postal_code"`          // 邮编
	Country        string `gorm:"size:100" json:"country"`             // 国家
	AdditionalInfo string `gorm:"type:text" json:"additional_info"`    // 附加说明

	Remark    string         `gorm:"type:text" json:"remark"`        // 买家备注
	PaidAt    *time.Time     `json:"paid_at"`                        // 支付时间
	ShippedAt *time.Time     `json:"shipped_at"`                     // 发货时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                     // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单明细
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细表，字段为下单时的商品快照
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	OrderID   uint      `gorm:"not null;index" json:"order_id"`              // 订单ID
	ProductID uint      `gorm:"not null;index" json:"product_id"`            // 商品ID
	Variant   string    `gorm:"size:100;default:''" json:"variant"`          // 规格
	Name      string    `gorm:"size:200;not null" json:"name"`               // 商品名快照
	Price     Money     `gorm:"type:decimal(20,2);not null" json:"price"`    // 单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                    // 数量
	Unit      string    `gorm:"size:20" json:"unit"`                         // 计量单位
	Image     string    `gorm:"size:500" json:"image"`                       // 图片快照
	CreatedAt time.Time `json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 单行小计 = 单价 * 数量
func (i *OrderItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.Price.Mul(intToDecimal(i.Quantity)))
}
