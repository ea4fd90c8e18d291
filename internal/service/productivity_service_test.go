package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/model"
	apperrors "prodtrack/backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestProductivityService(t *testing.T) (ProductivityService, *mockPersonRepo, *mockProductivityRepo) {
	t.Helper()
	repo, personRepo, productivityRepo := newMockRepository()
	svc := NewProductivityService(repo, nil, zap.NewNop())
	return svc, personRepo, productivityRepo
}

func seedPerson(t *testing.T, repo *mockPersonRepo, name, role string) *model.Person {
	t.Helper()
	p := &model.Person{Name: name, Role: role}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("创建人员失败: %v", err)
	}
	return p
}

func count(n int) *dto.Count {
	c := dto.Count(n)
	return &c
}

func submitReq(personID, date string, recipes, errs int) *dto.SubmitProductivityRequest {
	return &dto.SubmitProductivityRequest{
		PersonID:         personID,
		Date:             date,
		RecipesCompleted: count(recipes),
		ErrorsDetected:   count(errs),
	}
}

// ── Submit 测试 ──

func TestProductivityService_Submit_Success(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	ana := seedPerson(t, personRepo, "Ana", "Cocinero")

	result, err := svc.Submit(context.Background(), submitReq(ana.PersonID, "2023-05-01", 18, 2))
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if math.Abs(result.ProductivityPercentage-90) > 1e-9 {
		t.Errorf("期望生产率 90，实际 %v", result.ProductivityPercentage)
	}
	if result.Date != "2023-05-01T00:00:00.000Z" {
		t.Errorf("期望日期归一化为零点，实际 %s", result.Date)
	}
	if result.Person == nil || result.Person.Name != "Ana" || result.Person.ID != ana.PersonID {
		t.Errorf("期望关联人员 Ana，实际 %+v", result.Person)
	}
	if result.RecipesCompleted != 18 || result.ErrorsDetected != 2 {
		t.Errorf("计数不一致: %+v", result)
	}
}

func TestProductivityService_Submit_ZeroCounts(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	result, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01", 0, 0))
	if err != nil {
		t.Fatalf("0 计数应合法: %v", err)
	}
	if result.ProductivityPercentage != 0 {
		t.Errorf("期望生产率 0，实际 %v", result.ProductivityPercentage)
	}
}

func TestProductivityService_Submit_NormalizesTimeOfDay(t *testing.T) {
	svc, personRepo, productivityRepo := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	if _, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01T08:15:00Z", 5, 5)); err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	stored := productivityRepo.records[0].Date
	if !stored.Equal(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("期望存储 UTC 零点，实际 %s", stored)
	}
}

func TestProductivityService_Submit_DuplicateSameDay(t *testing.T) {
	svc, personRepo, productivityRepo := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	if _, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01T08:00:00Z", 10, 0)); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}

	_, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01T17:45:00Z", 3, 1))
	if !errors.Is(err, ErrRecordExists) {
		t.Errorf("期望 ErrRecordExists，实际: %v", err)
	}
	if !apperrors.IsDuplicate(err) {
		t.Error("期望唯一性冲突分类")
	}
	if len(productivityRepo.records) != 1 {
		t.Errorf("期望仅存储 1 条记录，实际=%d", len(productivityRepo.records))
	}
}

func TestProductivityService_Submit_SameDayDifferentPersons(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	a := seedPerson(t, personRepo, "A", "")
	b := seedPerson(t, personRepo, "B", "")

	if _, err := svc.Submit(context.Background(), submitReq(a.PersonID, "2023-05-01", 1, 1)); err != nil {
		t.Fatalf("A 提交应成功: %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitReq(b.PersonID, "2023-05-01", 1, 1)); err != nil {
		t.Fatalf("B 同日提交应成功: %v", err)
	}
}

func TestProductivityService_Submit_MissingFields(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	cases := map[string]*dto.SubmitProductivityRequest{
		"personId": {Date: "2023-05-01", RecipesCompleted: count(1), ErrorsDetected: count(1)},
		"date":     {PersonID: p.PersonID, RecipesCompleted: count(1), ErrorsDetected: count(1)},
		"recipes":  {PersonID: p.PersonID, Date: "2023-05-01", ErrorsDetected: count(1)},
		"errors":   {PersonID: p.PersonID, Date: "2023-05-01", RecipesCompleted: count(1)},
	}
	for name, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		if !errors.Is(err, ErrRecordFieldsRequired) {
			t.Errorf("缺少 %s 期望 ErrRecordFieldsRequired，实际: %v", name, err)
		}
	}
}

func TestProductivityService_Submit_NegativeCount(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	_, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01", -1, 0))
	if !errors.Is(err, ErrRecordNegativeCount) {
		t.Errorf("期望 ErrRecordNegativeCount，实际: %v", err)
	}
}

func TestProductivityService_Submit_InvalidDate(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")

	_, err := svc.Submit(context.Background(), submitReq(p.PersonID, "mañana", 1, 0))
	if !errors.Is(err, ErrRecordInvalidDate) {
		t.Errorf("期望 ErrRecordInvalidDate，实际: %v", err)
	}
	if !apperrors.IsValidation(err) {
		t.Error("期望校验错误分类")
	}
}

func TestProductivityService_Submit_PersonNotFound(t *testing.T) {
	svc, _, _ := setupTestProductivityService(t)

	for _, id := range []string{"7c9e6679-7425-40de-944b-e07fc1f90ae7", "60d5ec49f8c7d1001c8a4f01"} {
		_, err := svc.Submit(context.Background(), submitReq(id, "2023-05-01", 1, 0))
		if !errors.Is(err, ErrPersonNotFound) {
			t.Errorf("id=%s 期望 ErrPersonNotFound，实际: %v", id, err)
		}
	}
}

func TestProductivityService_Submit_StoreError(t *testing.T) {
	svc, personRepo, productivityRepo := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "")
	productivityRepo.createErr = errStoreDown

	_, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01", 1, 0))
	if !errors.Is(err, errStoreDown) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}
	if apperrors.IsValidation(err) || apperrors.IsNotFound(err) || apperrors.IsDuplicate(err) {
		t.Error("存储错误不应被归类为业务错误")
	}
}

// ── Query 测试 ──

func seedJanuary(t *testing.T, svc ProductivityService, personRepo *mockPersonRepo) (a, b *model.Person) {
	t.Helper()
	a = seedPerson(t, personRepo, "A", "")
	b = seedPerson(t, personRepo, "B", "")
	for _, r := range []*dto.SubmitProductivityRequest{
		submitReq(a.PersonID, "2022-12-31", 1, 0),
		submitReq(a.PersonID, "2023-01-01", 2, 0),
		submitReq(a.PersonID, "2023-01-31T22:30:00Z", 3, 0),
		submitReq(b.PersonID, "2023-01-15", 4, 0),
		submitReq(b.PersonID, "2023-02-01", 5, 0),
	} {
		if _, err := svc.Submit(context.Background(), r); err != nil {
			t.Fatalf("提交失败: %v", err)
		}
	}
	return a, b
}

func TestProductivityService_Query_DateRangeInclusive(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	seedJanuary(t, svc, personRepo)

	records, err := svc.Query(context.Background(), &dto.ProductivityQueryRequest{
		StartDate: "2023-01-01",
		EndDate:   "2023-01-31",
	})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}

	want := []int{3, 4, 2} // date 降序
	if len(records) != len(want) {
		t.Fatalf("期望 %d 条记录，实际 %d", len(want), len(records))
	}
	for i, r := range records {
		if r.RecipesCompleted != want[i] {
			t.Errorf("第 %d 条期望 recipes=%d，实际 %d", i, want[i], r.RecipesCompleted)
		}
	}
}

func TestProductivityService_Query_OpenEndedRange(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	seedJanuary(t, svc, personRepo)

	records, err := svc.Query(context.Background(), &dto.ProductivityQueryRequest{StartDate: "2023-01-15"})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("期望 3 条记录，实际 %d", len(records))
	}

	records, err = svc.Query(context.Background(), &dto.ProductivityQueryRequest{EndDate: "2022-12-31"})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("期望 1 条记录，实际 %d", len(records))
	}
}

func TestProductivityService_Query_PersonFilter(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	a, b := seedJanuary(t, svc, personRepo)

	records, err := svc.Query(context.Background(), &dto.ProductivityQueryRequest{PersonIDs: b.PersonID})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("期望 B 的 2 条记录，实际 %d", len(records))
	}
	for _, r := range records {
		if r.Person.Name != "B" {
			t.Errorf("不应返回其他人员的记录: %+v", r.Person)
		}
	}

	records, err = svc.Query(context.Background(), &dto.ProductivityQueryRequest{PersonIDs: a.PersonID + ", " + b.PersonID})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("期望 5 条记录，实际 %d", len(records))
	}

	records, err = svc.Query(context.Background(), &dto.ProductivityQueryRequest{})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("未过滤时期望全部 5 条记录，实际 %d", len(records))
	}
}

func TestProductivityService_Query_CombinedFilters(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	a, _ := seedJanuary(t, svc, personRepo)

	records, err := svc.Query(context.Background(), &dto.ProductivityQueryRequest{
		StartDate: "2023-01-01",
		EndDate:   "2023-01-31",
		PersonIDs: a.PersonID,
	})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("期望 2 条记录，实际 %d", len(records))
	}
}

func TestProductivityService_Query_PopulatesPerson(t *testing.T) {
	svc, personRepo, _ := setupTestProductivityService(t)
	p := seedPerson(t, personRepo, "Ana", "Cocinero")
	if _, err := svc.Submit(context.Background(), submitReq(p.PersonID, "2023-05-01", 18, 2)); err != nil {
		t.Fatalf("提交失败: %v", err)
	}

	records, err := svc.Query(context.Background(), &dto.ProductivityQueryRequest{StartDate: "2023-05-01", EndDate: "2023-05-01"})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(records))
	}
	got := records[0].Person
	if got == nil || got.Name != "Ana" || got.Role != "Cocinero" || got.ID != p.PersonID {
		t.Errorf("期望人员信息被填充，实际 %+v", got)
	}
}

func TestProductivityService_Query_InvalidFilters(t *testing.T) {
	svc, _, _ := setupTestProductivityService(t)

	cases := []struct {
		req  *dto.ProductivityQueryRequest
		want error
	}{
		{&dto.ProductivityQueryRequest{StartDate: "ayer"}, ErrRecordInvalidDate},
		{&dto.ProductivityQueryRequest{EndDate: "2023-02-30"}, ErrRecordInvalidDate},
		{&dto.ProductivityQueryRequest{PersonIDs: ",,"}, ErrInvalidPersonIDs},
		{&dto.ProductivityQueryRequest{PersonIDs: "abc"}, ErrInvalidPersonIDs},
	}
	for _, tc := range cases {
		_, err := svc.Query(context.Background(), tc.req)
		if !errors.Is(err, tc.want) {
			t.Errorf("%+v 期望 %v，实际: %v", tc.req, tc.want, err)
		}
		if !apperrors.IsValidation(err) {
			t.Errorf("%+v 期望校验错误分类", tc.req)
		}
	}
}

func TestProductivityService_Query_Empty(t *testing.T) {
	svc, _, _ := setupTestProductivityService(t)

	records, err := svc.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("期望空数组（非 nil），实际=%v", records)
	}
}

// ── 端到端示例 ──

func TestProductivityService_EndToEnd(t *testing.T) {
	repo, _, _ := newMockRepository()
	svc := NewService(repo, nil, zap.NewNop())
	ctx := context.Background()

	ana, err := svc.Person.Create(ctx, &dto.CreatePersonRequest{Name: "Ana", Role: "Cocinero"})
	if err != nil {
		t.Fatalf("创建 Ana 失败: %v", err)
	}

	rec, err := svc.Productivity.Submit(ctx, submitReq(ana.ID, "2023-05-01", 18, 2))
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if math.Abs(rec.ProductivityPercentage-90) > 1e-9 {
		t.Errorf("期望 90.00，实际 %.2f", rec.ProductivityPercentage)
	}

	if _, err := svc.Productivity.Submit(ctx, submitReq(ana.ID, "2023-05-01", 18, 2)); !errors.Is(err, ErrRecordExists) {
		t.Errorf("重复提交期望 ErrRecordExists，实际: %v", err)
	}

	records, err := svc.Productivity.Query(ctx, &dto.ProductivityQueryRequest{StartDate: "2023-05-01", EndDate: "2023-05-01"})
	if err != nil {
		t.Fatalf("Query 失败: %v", err)
	}
	if len(records) != 1 || records[0].Person.Name != "Ana" || records[0].ID != rec.ID {
		t.Errorf("期望恰好返回 Ana 的那条记录，实际 %+v", records)
	}
}
