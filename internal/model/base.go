package model

import "time"

// BaseModel 通用审计字段
// 本系统的业务记录创建后不可修改，因此只保留创建时间
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}
