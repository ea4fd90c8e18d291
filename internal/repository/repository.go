package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Person       PersonRepository
	Productivity ProductivityRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Person:       NewPersonRepo(db),
		Productivity: NewProductivityRepo(db),
	}
}
