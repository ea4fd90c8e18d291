package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"prodtrack/backend/internal/model"
	"prodtrack/backend/internal/repository"
)

// ── Mock PersonRepository ──
// 模拟 persons.name 唯一约束

type mockPersonRepo struct {
	persons map[string]*model.Person
	order   []string
	seq     int
	listErr error
	getErr  error
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{persons: make(map[string]*model.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	for _, p := range m.persons {
		if p.Name == person.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if person.PersonID == "" {
		person.PersonID = fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq)
	}
	person.CreatedAt = time.Date(2023, 1, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *person
	m.persons[person.PersonID] = &cp
	m.order = append(m.order, person.PersonID)
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id string) (*model.Person, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.persons[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) List(_ context.Context) ([]model.Person, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Person, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.persons[id])
	}
	return result, nil
}

// ── Mock ProductivityRepository ──
// 模拟 (person_id, date) 唯一约束、person_id 外键与查询过滤

type mockProductivityRepo struct {
	persons   *mockPersonRepo
	records   []*model.ProductivityRecord
	seq       int
	createErr error
	listErr   error
}

func newMockProductivityRepo(persons *mockPersonRepo) *mockProductivityRepo {
	return &mockProductivityRepo{persons: persons}
}

func (m *mockProductivityRepo) Create(_ context.Context, record *model.ProductivityRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.persons.persons[record.PersonID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	for _, r := range m.records {
		if r.PersonID == record.PersonID && r.Date.Equal(record.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	record.RecordID = fmt.Sprintf("10000000-0000-4000-8000-%012d", m.seq)
	record.CreatedAt = time.Date(2023, 6, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *record
	cp.Person = nil
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockProductivityRepo) List(_ context.Context, filter *repository.ProductivityFilter) ([]model.ProductivityRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.ProductivityRecord
	for _, r := range m.records {
		if filter != nil {
			if filter.From != nil && r.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && r.Date.After(*filter.To) {
				continue
			}
			if len(filter.PersonIDs) > 0 && !contains(filter.PersonIDs, r.PersonID) {
				continue
			}
		}
		cp := *r
		if p, ok := m.persons.persons[r.PersonID]; ok {
			cp.Person = &model.Person{PersonID: p.PersonID, Name: p.Name, Role: p.Role}
		}
		result = append(result, cp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ── 测试辅助 ──

var errStoreDown = errors.New("connection refused")

func newMockRepository() (*repository.Repository, *mockPersonRepo, *mockProductivityRepo) {
	personRepo := newMockPersonRepo()
	productivityRepo := newMockProductivityRepo(personRepo)
	return &repository.Repository{
		Person:       personRepo,
		Productivity: productivityRepo,
	}, personRepo, productivityRepo
}
