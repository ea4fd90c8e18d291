package model

import "time"

// ProductivityRecord 生产率记录表 — 对应 productivity_records
// (person_id, date) 唯一：每人每个日历日至多一条
type ProductivityRecord struct {
	RecordID               string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"id"`
	PersonID               string    `gorm:"type:uuid;not null;uniqueIndex:uk_productivity_records_person_date,priority:1" json:"personId"`
	Date                   time.Time `gorm:"type:date;not null;uniqueIndex:uk_productivity_records_person_date,priority:2" json:"date"` // UTC 零点
	RecipesCompleted       int       `gorm:"not null"                                                     json:"recipesCompleted"`
	ErrorsDetected         int       `gorm:"not null"                                                     json:"errorsDetected"`
	ProductivityPercentage float64   `gorm:"type:double precision;not null;default:0"                     json:"productivityPercentage"` // 派生字段，创建时计算
	BaseModel

	// 关联
	Person *Person `gorm:"foreignKey:PersonID;references:PersonID;constraint:OnDelete:RESTRICT" json:"person,omitempty"`
}

// TableName 指定表名
func (ProductivityRecord) TableName() string { return "productivity_records" }

// ProductivityPercentage 生产率 = 完成配方数 / (完成配方数 + 错误数) × 100
// 两者之和为 0 时返回 0
func ProductivityPercentage(recipesCompleted, errorsDetected int) float64 {
	total := recipesCompleted + errorsDetected
	if total == 0 {
		return 0
	}
	return float64(recipesCompleted) / float64(total) * 100
}
