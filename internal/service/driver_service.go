package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// ── 司机模块业务错误 ──

var (
	ErrDriverNotFound      = errors.New("司机不存在")
	ErrStaffIDExists       = errors.New("该工号已被使用")
	ErrAssignShiftNotFound = errors.New("分配的班次不存在")
)

// DriverService 司机档案业务接口
type DriverService interface {
	// Create 创建司机，工号全库唯一
	Create(ctx context.Context, req *dto.CreateDriverRequest) (*dto.DriverResponse, error)
	// Get 获取司机详情（含班次分配）
	Get(ctx context.Context, driverID string) (*dto.DriverResponse, error)
	// List 分页检索司机，keyword 匹配姓名/工号/车牌
	List(ctx context.Context, req *dto.DriverListRequest) ([]dto.DriverResponse, int64, error)
	// Update 更新司机档案（工号不可改）
	Update(ctx context.Context, driverID string, req *dto.UpdateDriverRequest) (*dto.DriverResponse, error)
	// Delete 删除司机
	Delete(ctx context.Context, driverID string) error
	// AssignShifts 整体替换司机的班次分配
	AssignShifts(ctx context.Context, driverID string, req *dto.AssignShiftsRequest) (*dto.DriverResponse, error)
}

type driverService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDriverService 创建 DriverService 实例
func NewDriverService(repo *repository.Repository, logger *zap.Logger) DriverService {
	return &driverService{repo: repo, logger: logger}
}

func (s *driverService) Create(ctx context.Context, req *dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	// 工号唯一性预检；并发窗口由数据库唯一约束兜底
	if _, err := s.repo.Driver.GetByStaffID(ctx, req.StaffID); err == nil {
		return nil, ErrStaffIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}

	driver := &model.Driver{
		Name:          req.Name,
		StaffID:       req.StaffID,
		CarNumber:     req.CarNumber,
		ContactNumber: req.ContactNumber,
	}
	if err := s.repo.Driver.Create(ctx, driver); err != nil {
		s.logger.Error("创建司机失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("司机已创建", zap.String("driver_id", driver.DriverID), zap.String("staff_id", driver.StaffID))
	return toDriverResponse(driver), nil
}

func (s *driverService) Get(ctx context.Context, driverID string) (*dto.DriverResponse, error) {
	driver, err := s.repo.Driver.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}
	return toDriverResponse(driver), nil
}

func (s *driverService) List(ctx context.Context, req *dto.DriverListRequest) ([]dto.DriverResponse, int64, error) {
	drivers, total, err := s.repo.Driver.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询司机列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.DriverResponse, 0, len(drivers))
	for i := range drivers {
		result = append(result, *toDriverResponse(&drivers[i]))
	}
	return result, total, nil
}

func (s *driverService) Update(ctx context.Context, driverID string, req *dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	driver, err := s.repo.Driver.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.CarNumber != nil {
		driver.CarNumber = req.CarNumber
	}
	if req.ContactNumber != nil {
		driver.ContactNumber = req.ContactNumber
	}

	if err := s.repo.Driver.Update(ctx, driver); err != nil {
		s.logger.Error("更新司机失败", zap.Error(err))
		return nil, err
	}
	return toDriverResponse(driver), nil
}

func (s *driverService) Delete(ctx context.Context, driverID string) error {
	if _, err := s.repo.Driver.GetByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriverNotFound
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return err
	}

	if err := s.repo.Driver.Delete(ctx, driverID); err != nil {
		s.logger.Error("删除司机失败", zap.Error(err))
		return err
	}

	s.logger.Info("司机已删除", zap.String("driver_id", driverID))
	return nil
}

func (s *driverService) AssignShifts(ctx context.Context, driverID string, req *dto.AssignShiftsRequest) (*dto.DriverResponse, error) {
	if _, err := s.repo.Driver.GetByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}

	assignments := make([]model.DriverShift, 0, len(req.Shifts))
	for _, item := range req.Shifts {
		if _, err := s.repo.Shift.GetByID(ctx, item.ShiftID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignShiftNotFound
			}
			s.logger.Error("查询班次失败", zap.Error(err))
			return nil, err
		}
		assignments = append(assignments, model.DriverShift{
			DriverID:  driverID,
			ShiftID:   item.ShiftID,
			IsPrimary: item.IsPrimary,
		})
	}

	if err := s.repo.DriverShift.ReplaceForDriver(ctx, driverID, assignments); err != nil {
		s.logger.Error("替换班次分配失败", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, driverID)
}

func toDriverResponse(d *model.Driver) *dto.DriverResponse {
	resp := &dto.DriverResponse{
		ID:            d.DriverID,
		Name:          d.Name,
		StaffID:       d.StaffID,
		CarNumber:     d.CarNumber,
		ContactNumber: d.ContactNumber,
		CreatedAt:     d.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for i := range d.Shifts {
		as := &d.Shifts[i]
		if as.Shift == nil {
			continue
		}
		resp.Shifts = append(resp.Shifts, dto.ShiftResponse{
			ID:        as.Shift.ShiftID,
			Name:      as.Shift.Name,
			StartTime: as.Shift.StartTime,
			EndTime:   as.Shift.EndTime,
			IsPrimary: as.IsPrimary,
		})
	}
	return resp
}
