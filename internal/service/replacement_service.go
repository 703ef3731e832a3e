package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// ── 替班模块业务错误 ──

var (
	ErrReplacementNotFound   = errors.New("替班记录不存在")
	ErrReplacementExists     = errors.New("该班次已有替班司机")
	ErrScheduleNotAbsent     = errors.New("该日程未标记休息日或年假，无需替班")
	ErrReplacementSelf       = errors.New("替班司机不能是缺勤司机本人")
	ErrReplacementDriverGone = errors.New("替班司机不存在")
)

// 替班加班计费：每顶一个班次固定累计 8 小时，费率 1.5 倍
var (
	otHoursPerShift = decimal.NewFromInt(8)
	otRateDefault   = decimal.NewFromFloat(1.5)
)

// ReplacementService 替班与加班台账业务接口
//
// 每指派一次替班，替班司机在当日获得固定 8 小时加班；同一司机
// 同日多次替班时累加合并到同一条加班记录（(driver, date, type) 唯一）。
// 改派与撤销按被移走的那份贡献精确扣减，余额归零才删除整条记录。
type ReplacementService interface {
	// Assign 指派替班并累计加班
	Assign(ctx context.Context, req *dto.AssignReplacementRequest) (*dto.ReplacementResponse, error)
	// Update 改派替班司机并迁移加班贡献
	Update(ctx context.Context, replacementID string, req *dto.UpdateReplacementRequest) (*dto.ReplacementResponse, error)
	// Delete 撤销替班并扣减加班贡献
	Delete(ctx context.Context, replacementID string) error
	// ListByDate 按日期列出全部替班
	ListByDate(ctx context.Context, date string) ([]dto.ReplacementResponse, error)
}

type replacementService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewReplacementService 创建 ReplacementService 实例
func NewReplacementService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ReplacementService {
	return &replacementService{repo: repo, loc: loc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Assign — 指派替班 + 加班累计
// ════════════════════════════════════════════════════════════

func (s *replacementService) Assign(ctx context.Context, req *dto.AssignReplacementRequest) (*dto.ReplacementResponse, error) {
	// 1. 前置条件：缺勤日程存在且已标记休息日/年假
	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}
	if !schedule.IsAbsent() {
		return nil, ErrScheduleNotAbsent
	}
	if schedule.DriverID == req.ReplacementDriverID {
		return nil, ErrReplacementSelf
	}

	// 2. 替班司机存在性
	if _, err := s.repo.Driver.GetByID(ctx, req.ReplacementDriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementDriverGone
		}
		s.logger.Error("查询替班司机失败", zap.Error(err))
		return nil, err
	}

	// 3. 单替班模型：同一 (schedule, shift) 只允许一条
	if _, err := s.repo.Replacement.GetByScheduleAndShift(ctx, req.ScheduleID, req.ShiftID); err == nil {
		return nil, ErrReplacementExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询替班记录失败", zap.Error(err))
		return nil, err
	}

	// 4. 写入替班行
	replacement := &model.Replacement{
		ScheduleID:          req.ScheduleID,
		ReplacementDriverID: req.ReplacementDriverID,
		ShiftID:             req.ShiftID,
	}
	if err := s.repo.Replacement.Create(ctx, replacement); err != nil {
		s.logger.Error("创建替班记录失败", zap.Error(err))
		return nil, err
	}

	// 5. 加班累计：+8h，已有记录则合并
	if err := s.accrueOvertime(ctx, req.ReplacementDriverID, schedule.Date); err != nil {
		// 替班行已写入而加班未累计：两步写入非原子（无批量事务），
		// 错误上抛由前端重新拉取权威状态
		return nil, err
	}

	s.logger.Info("替班已指派",
		zap.String("schedule_id", req.ScheduleID),
		zap.String("replacement_driver_id", req.ReplacementDriverID),
		zap.String("shift_id", req.ShiftID),
	)

	return s.buildResponse(ctx, replacement.ReplacementID)
}

// ════════════════════════════════════════════════════════════
// Update — 改派替班司机，迁移 8 小时贡献
// ════════════════════════════════════════════════════════════

func (s *replacementService) Update(ctx context.Context, replacementID string, req *dto.UpdateReplacementRequest) (*dto.ReplacementResponse, error) {
	replacement, err := s.repo.Replacement.GetByID(ctx, replacementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementNotFound
		}
		s.logger.Error("查询替班记录失败", zap.Error(err))
		return nil, err
	}

	schedule, err := s.repo.Schedule.GetByID(ctx, replacement.ScheduleID)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}

	oldDriverID := replacement.ReplacementDriverID
	newDriverID := req.ReplacementDriverID
	if newDriverID == oldDriverID {
		return s.buildResponse(ctx, replacementID)
	}
	if newDriverID == schedule.DriverID {
		return nil, ErrReplacementSelf
	}
	if _, err := s.repo.Driver.GetByID(ctx, newDriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplacementDriverGone
		}
		s.logger.Error("查询替班司机失败", zap.Error(err))
		return nil, err
	}

	// 1. 扣减原司机的 8 小时贡献（精确扣减，归零才删整条）
	if err := s.reverseOvertime(ctx, oldDriverID, schedule.Date); err != nil {
		return nil, err
	}

	// 2. 改写替班行
	replacement.ReplacementDriverID = newDriverID
	if err := s.repo.Replacement.Update(ctx, replacement); err != nil {
		s.logger.Error("更新替班记录失败", zap.Error(err))
		return nil, err
	}

	// 3. 给新司机累计 8 小时
	if err := s.accrueOvertime(ctx, newDriverID, schedule.Date); err != nil {
		return nil, err
	}

	s.logger.Info("替班已改派",
		zap.String("replacement_id", replacementID),
		zap.String("from_driver", oldDriverID),
		zap.String("to_driver", newDriverID),
	)

	return s.buildResponse(ctx, replacementID)
}

// ════════════════════════════════════════════════════════════
// Delete — 撤销替班，扣减 8 小时贡献
// ════════════════════════════════════════════════════════════

func (s *replacementService) Delete(ctx context.Context, replacementID string) error {
	replacement, err := s.repo.Replacement.GetByID(ctx, replacementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplacementNotFound
		}
		s.logger.Error("查询替班记录失败", zap.Error(err))
		return err
	}

	schedule, err := s.repo.Schedule.GetByID(ctx, replacement.ScheduleID)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return err
	}

	if err := s.reverseOvertime(ctx, replacement.ReplacementDriverID, schedule.Date); err != nil {
		return err
	}

	if err := s.repo.Replacement.Delete(ctx, replacementID); err != nil {
		s.logger.Error("删除替班记录失败", zap.Error(err))
		return err
	}

	s.logger.Info("替班已撤销", zap.String("replacement_id", replacementID))
	return nil
}

func (s *replacementService) ListByDate(ctx context.Context, date string) ([]dto.ReplacementResponse, error) {
	day, err := parseDate(date, s.loc)
	if err != nil {
		return nil, ErrDateInvalid
	}

	schedules, err := s.repo.Schedule.ListByDate(ctx, day)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReplacementResponse, 0)
	for i := range schedules {
		sch := &schedules[i]
		for j := range sch.Replacements {
			result = append(result, *toReplacementResponse(&sch.Replacements[j], sch))
		}
	}
	return result, nil
}

// ── 加班台账内部规则 ──

// accrueOvertime 向 (driver, date, replacement) 合并累加 8 小时
func (s *replacementService) accrueOvertime(ctx context.Context, driverID string, date time.Time) error {
	record, err := s.repo.Overtime.GetByDriverDateType(ctx, driverID, date, model.OTTypeReplacement)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询加班记录失败", zap.Error(err))
		return err
	}

	if record != nil {
		record.Hours = record.Hours.Add(otHoursPerShift)
		if err := s.repo.Overtime.Update(ctx, record); err != nil {
			s.logger.Error("累计加班失败", zap.Error(err))
			return err
		}
		return nil
	}

	if err := s.repo.Overtime.Create(ctx, &model.OvertimeRecord{
		DriverID: driverID,
		Date:     date,
		Hours:    otHoursPerShift,
		OTType:   model.OTTypeReplacement,
		OTRate:   otRateDefault,
	}); err != nil {
		s.logger.Error("创建加班记录失败", zap.Error(err))
		return err
	}
	return nil
}

// reverseOvertime 扣减 8 小时贡献；余额归零（或以下）时删除整条记录。
// 同日多班合并的记录只会被扣掉本次被移走的 8 小时，不会整条误删。
func (s *replacementService) reverseOvertime(ctx context.Context, driverID string, date time.Time) error {
	record, err := s.repo.Overtime.GetByDriverDateType(ctx, driverID, date, model.OTTypeReplacement)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 台账缺失时扣减视为已完成
			return nil
		}
		s.logger.Error("查询加班记录失败", zap.Error(err))
		return err
	}

	remaining := record.Hours.Sub(otHoursPerShift)
	if remaining.IsPositive() {
		record.Hours = remaining
		if err := s.repo.Overtime.Update(ctx, record); err != nil {
			s.logger.Error("扣减加班失败", zap.Error(err))
			return err
		}
		return nil
	}

	if err := s.repo.Overtime.Delete(ctx, record.OvertimeID); err != nil {
		s.logger.Error("删除加班记录失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 响应构造 ──

func (s *replacementService) buildResponse(ctx context.Context, replacementID string) (*dto.ReplacementResponse, error) {
	replacement, err := s.repo.Replacement.GetByID(ctx, replacementID)
	if err != nil {
		s.logger.Error("查询替班记录失败", zap.Error(err))
		return nil, err
	}
	return toReplacementResponse(replacement, replacement.Schedule), nil
}

func toReplacementResponse(r *model.Replacement, schedule *model.Schedule) *dto.ReplacementResponse {
	resp := &dto.ReplacementResponse{
		ID:         r.ReplacementID,
		ScheduleID: r.ScheduleID,
	}
	if schedule != nil {
		resp.Date = schedule.Date.Format("2006-01-02")
		if schedule.Driver != nil {
			resp.OriginalDriver = &dto.DriverBrief{
				ID:      schedule.Driver.DriverID,
				Name:    schedule.Driver.Name,
				StaffID: schedule.Driver.StaffID,
			}
		}
	}
	if r.ReplacementDriver != nil {
		resp.ReplacementDriver = &dto.DriverBrief{
			ID:      r.ReplacementDriver.DriverID,
			Name:    r.ReplacementDriver.Name,
			StaffID: r.ReplacementDriver.StaffID,
		}
	}
	if r.Shift != nil {
		resp.Shift = &dto.ShiftResponse{
			ID:        r.Shift.ShiftID,
			Name:      r.Shift.Name,
			StartTime: r.Shift.StartTime,
			EndTime:   r.Shift.EndTime,
		}
	}
	return resp
}
