package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
// 不变式：同一用户至多一条 is_default = true
type Address struct {
	ID             uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID         uint           `gorm:"not null;index" json:"user_id"`           // 用户ID
	Name           string         `gorm:"size:100;not null" json:"name"`           // 地址别名（如 家、公司）
	Recipient      string         `gorm:"size:100;not null" json:"recipient"`      // 收件人
	Phone          string         `gorm:"size:30;not null" json:"phone"`           // 电话
	Address        string         `gorm:"type:text;not null" json:"address"`       // 街道地址
	Neighborhood   string         `gorm:"size:100" json:"neighborhood"`            // 街区/小区
	City           string         `gorm:"size:100;not null" json:"city"`           // 城市
	State          string         `gorm:"size:100" json:"state"`                   // 省/州
	PostalCode     string         `gorm:"size:20" json:"postal_code"`              // 邮编
	Country        string         `gorm:"size:100;not null" json:"country"`        // 国家
	AdditionalInfo string         `gorm:"type:text" json:"additional_info"`        // 附加说明
	IsDefault      bool           `gorm:"default:false;index" json:"is_default"`   // 是否默认地址
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
