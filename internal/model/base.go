package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 本系统所有删除均为物理删除，不使用软删除字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
