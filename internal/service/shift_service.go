package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound    = errors.New("班次不存在")
	ErrShiftTimeInvalid = errors.New("班次时间格式无效，应为 HH:MM")
)

// ShiftService 班次定义业务接口
type ShiftService interface {
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	List(ctx context.Context) ([]dto.ShiftResponse, error)
	Update(ctx context.Context, shiftID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, shiftID string) error
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// validShiftTime 校验 "HH:MM"。跨午夜班次合法（如 22:00–06:00），
// 因此不校验 start < end。
func validShiftTime(value string) bool {
	// time.Parse 接受 "6:00" 这类未补零的小时，须先卡长度
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if !validShiftTime(req.StartTime) || !validShiftTime(req.EndTime) {
		return nil, ErrShiftTimeInvalid
	}

	shift := &model.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("班次已创建", zap.String("shift_id", shift.ShiftID), zap.String("name", shift.Name))
	return toShiftResponse(shift), nil
}

func (s *shiftService) List(ctx context.Context) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, *toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) Update(ctx context.Context, shiftID string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.StartTime != nil {
		if !validShiftTime(*req.StartTime) {
			return nil, ErrShiftTimeInvalid
		}
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validShiftTime(*req.EndTime) {
			return nil, ErrShiftTimeInvalid
		}
		shift.EndTime = *req.EndTime
	}

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("更新班次失败", zap.Error(err))
		return nil, err
	}
	return toShiftResponse(shift), nil
}

func (s *shiftService) Delete(ctx context.Context, shiftID string) error {
	if _, err := s.repo.Shift.GetByID(ctx, shiftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return err
	}

	if err := s.repo.Shift.Delete(ctx, shiftID); err != nil {
		s.logger.Error("删除班次失败", zap.Error(err))
		return err
	}
	return nil
}

func toShiftResponse(sh *model.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:        sh.ShiftID,
		Name:      sh.Name,
		StartTime: sh.StartTime,
		EndTime:   sh.EndTime,
	}
}
