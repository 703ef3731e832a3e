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

// ── 休息日规律模块业务错误 ──

var (
	ErrPatternNotFound   = errors.New("休息日规律不存在")
	ErrPatternYearPast   = errors.New("不能为过去的年份设置规律")
	ErrPatternDriverGone = errors.New("司机不存在")
)

// DayoffPatternService 月度休息日规律业务接口
//
// 规律即"司机 X 在某年某月每逢星期 N 休息"。SetPattern 在保存规律的
// 同时同步展开为当月具体的休息日日程行；展开前先清除该司机当月
// 由旧规律生成的休息日行，避免改规律后残留脏数据。
type DayoffPatternService interface {
	// SetPattern 新建或修改规律，并展开为当月休息日
	SetPattern(ctx context.Context, req *dto.SetPatternRequest) (*dto.PatternResponse, error)
	// DeletePattern 删除规律及其生成的当月休息日
	DeletePattern(ctx context.Context, patternID string) error
	// ListPatterns 按月份列出全部规律
	ListPatterns(ctx context.Context, month, year int) ([]dto.PatternResponse, error)
}

type dayoffPatternService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewDayoffPatternService 创建 DayoffPatternService 实例
// loc 为日期换算的固定参照时区（曼谷）
func NewDayoffPatternService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) DayoffPatternService {
	return &dayoffPatternService{repo: repo, loc: loc, logger: logger}
}

// ── 纯函数：规律展开 ──

// datesMatchingWeekday 返回某年某月中星期几等于 weekday 的全部日期，
// 按时间先后排列。日期在 loc 时区下构造与判定，不依赖存储。
func datesMatchingWeekday(year, month int, weekday time.Weekday, loc *time.Location) []time.Time {
	var dates []time.Time
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	for d.Month() == time.Month(month) {
		if d.Weekday() == weekday {
			dates = append(dates, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

// monthRange 返回某年某月的 [首日, 末日] 闭区间
func monthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ════════════════════════════════════════════════════════════
// SetPattern — 规律 upsert + 当月展开
// ════════════════════════════════════════════════════════════

func (s *dayoffPatternService) SetPattern(ctx context.Context, req *dto.SetPatternRequest) (*dto.PatternResponse, error) {
	// 1. 校验：年份不得早于当前年（以参照时区为准）
	if req.Year < time.Now().In(s.loc).Year() {
		return nil, ErrPatternYearPast
	}

	// 2. 校验司机存在
	driver, err := s.repo.Driver.GetByID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatternDriverGone
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}

	// 3. 规律 upsert：(driver, month, year) 唯一
	pattern, err := s.repo.DayoffPattern.GetByDriverMonthYear(ctx, req.DriverID, req.Month, req.Year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询休息日规律失败", zap.Error(err))
		return nil, err
	}

	dayOfWeek := *req.DayOfWeek
	if pattern != nil {
		pattern.DayOfWeek = dayOfWeek
		if err := s.repo.DayoffPattern.Update(ctx, pattern); err != nil {
			s.logger.Error("更新休息日规律失败", zap.Error(err))
			return nil, err
		}
	} else {
		pattern = &model.MonthlyDayoffPattern{
			DriverID:  req.DriverID,
			Month:     req.Month,
			Year:      req.Year,
			DayOfWeek: dayOfWeek,
		}
		if err := s.repo.DayoffPattern.Create(ctx, pattern); err != nil {
			s.logger.Error("创建休息日规律失败", zap.Error(err))
			return nil, err
		}
	}

	// 4. 展开：先清除该司机当月已有的休息日行（旧规律的产物），
	//    再按新规律逐日 upsert。先清后插保证改规律不留脏行。
	first, last := monthRange(req.Year, req.Month, s.loc)
	if _, err := s.repo.Schedule.DeleteDayOffInRange(ctx, req.DriverID, first, last); err != nil {
		s.logger.Error("清除旧休息日失败", zap.Error(err))
		return nil, err
	}

	dates := datesMatchingWeekday(req.Year, req.Month, time.Weekday(dayOfWeek), s.loc)
	generated := 0
	for _, d := range dates {
		existing, err := s.repo.Schedule.GetByDriverAndDate(ctx, req.DriverID, d)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询日程失败", zap.Error(err), zap.String("date", d.Format("2006-01-02")))
			return nil, err
		}
		if existing != nil {
			// 唯一键冲突行：置 is_day_off，其余字段保留
			existing.IsDayOff = true
			if err := s.repo.Schedule.Update(ctx, existing); err != nil {
				s.logger.Error("更新日程失败", zap.Error(err))
				return nil, err
			}
		} else {
			if err := s.repo.Schedule.Create(ctx, &model.Schedule{
				DriverID: req.DriverID,
				Date:     d,
				IsDayOff: true,
			}); err != nil {
				s.logger.Error("创建休息日日程失败", zap.Error(err))
				return nil, err
			}
		}
		generated++
	}

	s.logger.Info("休息日规律已展开",
		zap.String("driver_id", req.DriverID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("day_of_week", dayOfWeek),
		zap.Int("generated", generated),
	)

	resp := toPatternResponse(pattern)
	resp.Driver = &dto.DriverBrief{ID: driver.DriverID, Name: driver.Name, StaffID: driver.StaffID}
	resp.Generated = generated
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// DeletePattern — 删除规律与当月生成的休息日
// ════════════════════════════════════════════════════════════
//
// 两次删除是先后独立的写操作，不在同一事务内：若第二步失败，
// 调用方重新拉取权威状态即可恢复一致（补偿读取，非回滚）。

func (s *dayoffPatternService) DeletePattern(ctx context.Context, patternID string) error {
	pattern, err := s.repo.DayoffPattern.GetByID(ctx, patternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatternNotFound
		}
		s.logger.Error("查询休息日规律失败", zap.Error(err))
		return err
	}

	first, last := monthRange(pattern.Year, pattern.Month, s.loc)
	removed, err := s.repo.Schedule.DeleteDayOffInRange(ctx, pattern.DriverID, first, last)
	if err != nil {
		s.logger.Error("删除休息日日程失败", zap.Error(err))
		return err
	}

	if err := s.repo.DayoffPattern.Delete(ctx, patternID); err != nil {
		s.logger.Error("删除休息日规律失败", zap.Error(err),
			zap.Int64("schedules_removed", removed))
		return err
	}

	s.logger.Info("休息日规律已删除",
		zap.String("pattern_id", patternID),
		zap.Int64("schedules_removed", removed),
	)
	return nil
}

func (s *dayoffPatternService) ListPatterns(ctx context.Context, month, year int) ([]dto.PatternResponse, error) {
	patterns, err := s.repo.DayoffPattern.ListByMonthYear(ctx, month, year)
	if err != nil {
		s.logger.Error("查询休息日规律列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PatternResponse, 0, len(patterns))
	for i := range patterns {
		resp := toPatternResponse(&patterns[i])
		if patterns[i].Driver != nil {
			resp.Driver = &dto.DriverBrief{
				ID:      patterns[i].Driver.DriverID,
				Name:    patterns[i].Driver.Name,
				StaffID: patterns[i].Driver.StaffID,
			}
		}
		result = append(result, *resp)
	}
	return result, nil
}

func toPatternResponse(p *model.MonthlyDayoffPattern) *dto.PatternResponse {
	return &dto.PatternResponse{
		ID:        p.PatternID,
		DriverID:  p.DriverID,
		Month:     p.Month,
		Year:      p.Year,
		DayOfWeek: p.DayOfWeek,
	}
}
