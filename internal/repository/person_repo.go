package repository

import (
	"context"

	"gorm.io/gorm"

	"prodtrack/backend/internal/model"
)

// PersonRepository 人员数据访问接口
// 人员创建后不可修改或删除，因此不提供 Update / Delete
type PersonRepository interface {
	// Create 插入人员；名称冲突时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id string) (*model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
}

// personRepo PersonRepository 的 GORM 实现
type personRepo struct {
	db *gorm.DB
}

// NewPersonRepo 创建 PersonRepository 实例
func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepo) GetByID(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("person_id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) List(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	err := r.db.WithContext(ctx).
		Order("created_at ASC, person_id ASC").
		Find(&persons).Error
	return persons, err
}
