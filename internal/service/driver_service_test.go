package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestDriverService() (DriverService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewDriverService(repo, zap.NewNop())
	return svc, mocks
}

func strPtr(v string) *string { return &v }

// ── Create 测试 ──

func TestDriverService_Create_Success(t *testing.T) {
	svc, mocks := setupTestDriverService()

	resp, err := svc.Create(context.Background(), &dto.CreateDriverRequest{
		Name:      "Somchai",
		StaffID:   "D001",
		CarNumber: strPtr("กข-1234"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "Somchai" || resp.StaffID != "D001" {
		t.Errorf("响应不符: %+v", resp)
	}
	if len(mocks.driver.drivers) != 1 {
		t.Errorf("期望 1 个司机，实际 %d", len(mocks.driver.drivers))
	}
}

func TestDriverService_Create_DuplicateStaffID(t *testing.T) {
	svc, _ := setupTestDriverService()

	ctx := context.Background()
	if _, err := svc.Create(ctx, &dto.CreateDriverRequest{Name: "Somchai", StaffID: "D001"}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err := svc.Create(ctx, &dto.CreateDriverRequest{Name: "Anan", StaffID: "D001"})
	if !errors.Is(err, ErrStaffIDExists) {
		t.Errorf("期望 ErrStaffIDExists，实际: %v", err)
	}
}

// ── Get / List 测试 ──

func TestDriverService_Get_WithShifts(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}
	mocks.shift.shifts["shift-am"] = &model.Shift{ShiftID: "shift-am", Name: "Morning", StartTime: "06:00", EndTime: "14:00"}
	mocks.driverShift.assign("driver-a", "shift-am", true)

	resp, err := svc.Get(context.Background(), "driver-a")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if len(resp.Shifts) != 1 {
		t.Fatalf("期望 1 个班次，实际 %d", len(resp.Shifts))
	}
	if resp.Shifts[0].ID != "shift-am" || !resp.Shifts[0].IsPrimary {
		t.Errorf("班次不符: %+v", resp.Shifts[0])
	}
}

func TestDriverService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestDriverService()

	_, err := svc.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("期望 ErrDriverNotFound，实际: %v", err)
	}
}

func TestDriverService_List_Keyword(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}
	mocks.driver.drivers["driver-b"] = &model.Driver{DriverID: "driver-b", Name: "Anan", StaffID: "D002"}

	result, total, err := svc.List(context.Background(), &dto.DriverListRequest{Keyword: "Somchai"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("期望命中 1 个，实际 total=%d len=%d", total, len(result))
	}
	if result[0].Name != "Somchai" {
		t.Errorf("期望 Somchai，实际 %s", result[0].Name)
	}
}

// ── Update 测试 ──

func TestDriverService_Update_PatchFields(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}

	resp, err := svc.Update(context.Background(), "driver-a", &dto.UpdateDriverRequest{
		CarNumber: strPtr("กข-9999"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	// 未提交的字段保持不变
	if resp.Name != "Somchai" {
		t.Errorf("姓名不应变化，实际 %s", resp.Name)
	}
	if resp.CarNumber == nil || *resp.CarNumber != "กข-9999" {
		t.Errorf("车牌应更新，实际 %v", resp.CarNumber)
	}
	// 工号不可改：请求结构中根本没有该字段
	if resp.StaffID != "D001" {
		t.Errorf("工号不应变化，实际 %s", resp.StaffID)
	}
}

func TestDriverService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestDriverService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateDriverRequest{Name: strPtr("X")})
	if !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("期望 ErrDriverNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestDriverService_Delete(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}

	if err := svc.Delete(context.Background(), "driver-a"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(mocks.driver.drivers) != 0 {
		t.Errorf("司机应已删除，实际剩余 %d", len(mocks.driver.drivers))
	}

	if err := svc.Delete(context.Background(), "driver-a"); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("期望 ErrDriverNotFound，实际: %v", err)
	}
}

// ── AssignShifts 测试 ──

func TestDriverService_AssignShifts_Replaces(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}
	mocks.shift.shifts["shift-am"] = &model.Shift{ShiftID: "shift-am", Name: "Morning", StartTime: "06:00", EndTime: "14:00"}
	mocks.shift.shifts["shift-pm"] = &model.Shift{ShiftID: "shift-pm", Name: "Evening", StartTime: "14:00", EndTime: "22:00"}
	mocks.driverShift.assign("driver-a", "shift-am", true)

	// 整体替换为晚班
	resp, err := svc.AssignShifts(context.Background(), "driver-a", &dto.AssignShiftsRequest{
		Shifts: []dto.ShiftAssignment{{ShiftID: "shift-pm", IsPrimary: true}},
	})
	if err != nil {
		t.Fatalf("AssignShifts 应成功: %v", err)
	}
	if len(resp.Shifts) != 1 || resp.Shifts[0].ID != "shift-pm" {
		t.Errorf("期望仅剩 shift-pm，实际 %+v", resp.Shifts)
	}
}

func TestDriverService_AssignShifts_UnknownShift(t *testing.T) {
	svc, mocks := setupTestDriverService()

	mocks.driver.drivers["driver-a"] = &model.Driver{DriverID: "driver-a", Name: "Somchai", StaffID: "D001"}

	_, err := svc.AssignShifts(context.Background(), "driver-a", &dto.AssignShiftsRequest{
		Shifts: []dto.ShiftAssignment{{ShiftID: "nonexistent"}},
	})
	if !errors.Is(err, ErrAssignShiftNotFound) {
		t.Errorf("期望 ErrAssignShiftNotFound，实际: %v", err)
	}
}
