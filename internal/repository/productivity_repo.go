package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"prodtrack/backend/internal/model"
)

// ProductivityFilter 生产率记录查询条件，零值字段表示不过滤，多个条件取交集
type ProductivityFilter struct {
	From      *time.Time // date >= From
	To        *time.Time // date <= To
	PersonIDs []string   // person_id IN PersonIDs
}

// ProductivityRepository 生产率记录数据访问接口
type ProductivityRepository interface {
	// Create 插入记录；(person_id, date) 冲突时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, record *model.ProductivityRecord) error
	// List 按条件查询，按 date 降序，并预加载人员的 name / role
	List(ctx context.Context, filter *ProductivityFilter) ([]model.ProductivityRecord, error)
}

type productivityRepo struct {
	db *gorm.DB
}

// NewProductivityRepo 创建 ProductivityRepository 实例
func NewProductivityRepo(db *gorm.DB) ProductivityRepository {
	return &productivityRepo{db: db}
}

func (r *productivityRepo) Create(ctx context.Context, record *model.ProductivityRecord) error {
	// 关联对象仅用于展示，不随记录写入
	return r.db.WithContext(ctx).Omit("Person").Create(record).Error
}

func (r *productivityRepo) List(ctx context.Context, filter *ProductivityFilter) ([]model.ProductivityRecord, error) {
	var records []model.ProductivityRecord
	db := r.db.WithContext(ctx).Model(&model.ProductivityRecord{})

	if filter != nil {
		if filter.From != nil {
			db = db.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			db = db.Where("date <= ?", *filter.To)
		}
		if len(filter.PersonIDs) > 0 {
			db = db.Where("person_id IN ?", filter.PersonIDs)
		}
	}

	err := db.
		Preload("Person", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("person_id", "name", "role")
		}).
		Order("date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}
