package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 并发模型为 last-writer-wins，不做乐观锁版本控制。
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
