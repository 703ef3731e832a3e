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

// ── 节假日模块业务错误 ──

var (
	ErrHolidayNotFound = errors.New("节假日不存在")
	ErrHolidayExists   = errors.New("该日期已登记节假日")
)

// HolidayService 节假日业务接口
// 节假日只影响看板展示（高亮），不参与排班规则。
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	ListByYear(ctx context.Context, year int) ([]dto.HolidayResponse, error)
	Delete(ctx context.Context, holidayID string) error
}

type holidayService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, loc: loc, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := parseDate(req.Date, s.loc)
	if err != nil {
		return nil, ErrDateInvalid
	}

	if _, err := s.repo.Holiday.GetByDate(ctx, date); err == nil {
		return nil, ErrHolidayExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	holiday := &model.Holiday{Date: date, Name: req.Name}
	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建节假日失败", zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *holidayService) ListByYear(ctx context.Context, year int) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.ListByYear(ctx, year)
	if err != nil {
		s.logger.Error("查询节假日列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Delete(ctx context.Context, holidayID string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, holidayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("查询节假日失败", zap.Error(err))
		return err
	}

	if err := s.repo.Holiday.Delete(ctx, holidayID); err != nil {
		s.logger.Error("删除节假日失败", zap.Error(err))
		return err
	}
	return nil
}

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:   h.HolidayID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
