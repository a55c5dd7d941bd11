package models

import "time"

// Setting 系统设置表，键值 JSON 存储
type Setting struct {
	Key       string    `gorm:"primarykey;size:100" json:"key"`  // 设置键
	ValueJSON JSON      `gorm:"type:json" json:"value"`          // 设置值
	UpdatedAt time.Time `json:"updated_at"`                      // 更新时间
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
