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

// ── 日程模块业务错误 ──

var (
	ErrScheduleNotFound   = errors.New("日程不存在")
	ErrScheduleDriverGone = errors.New("司机不存在")
	ErrScheduleHasReplace = errors.New("该日程已有替班记录，请先撤销替班")
	ErrDateInvalid        = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// ScheduleService 日程状态业务接口
//
// 一条日程行记录司机某个日历日的状态（休息日 / 年假）。
// (driver, date) 全库唯一：重复标记为原地更新，绝不产生重复行。
type ScheduleService interface {
	// MarkStatus 标记司机某日为休息日或年假
	MarkStatus(ctx context.Context, req *dto.MarkStatusRequest) (*dto.ScheduleResponse, error)
	// ClearStatus 清除司机某日状态（删除日程行）
	ClearStatus(ctx context.Context, req *dto.ClearStatusRequest) error
	// GetDailyBoard 值班看板：全体司机某日状态 + 替班覆盖情况
	GetDailyBoard(ctx context.Context, date string) (*dto.DailyBoardResponse, error)
	// GetMonthlyBoard 月历：某司机（或全体）某月的日程行
	GetMonthlyBoard(ctx context.Context, req *dto.MonthlyBoardRequest) (*dto.MonthlyBoardResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, loc: loc, logger: logger}
}

// parseDate 在参照时区下解析 "2006-01-02" 日期
func parseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}

// ════════════════════════════════════════════════════════════
// MarkStatus — (driver, date) upsert，状态互斥写入
// ════════════════════════════════════════════════════════════

func (s *scheduleService) MarkStatus(ctx context.Context, req *dto.MarkStatusRequest) (*dto.ScheduleResponse, error) {
	date, err := parseDate(req.Date, s.loc)
	if err != nil {
		return nil, ErrDateInvalid
	}

	driver, err := s.repo.Driver.GetByID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleDriverGone
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return nil, err
	}

	isDayOff := req.Status == dto.StatusDayOff
	isAnnualLeave := req.Status == dto.StatusAnnualLeave

	schedule, err := s.repo.Schedule.GetByDriverAndDate(ctx, req.DriverID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}

	if schedule != nil {
		schedule.IsDayOff = isDayOff
		schedule.IsAnnualLeave = isAnnualLeave
		if req.Remark != "" {
			schedule.Remark = req.Remark
		}
		if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
			s.logger.Error("更新日程失败", zap.Error(err))
			return nil, err
		}
	} else {
		schedule = &model.Schedule{
			DriverID:      req.DriverID,
			Date:          date,
			IsDayOff:      isDayOff,
			IsAnnualLeave: isAnnualLeave,
			Remark:        req.Remark,
		}
		if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
			s.logger.Error("创建日程失败", zap.Error(err))
			return nil, err
		}
	}

	resp := toScheduleResponse(schedule)
	resp.Driver = &dto.DriverBrief{ID: driver.DriverID, Name: driver.Name, StaffID: driver.StaffID}
	return resp, nil
}

func (s *scheduleService) ClearStatus(ctx context.Context, req *dto.ClearStatusRequest) error {
	date, err := parseDate(req.Date, s.loc)
	if err != nil {
		return ErrDateInvalid
	}

	schedule, err := s.repo.Schedule.GetByDriverAndDate(ctx, req.DriverID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询日程失败", zap.Error(err))
		return err
	}

	// 有替班引用时拒绝删除，避免悬挂的替班与加班记录
	count, err := s.repo.Replacement.CountBySchedule(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("查询替班数量失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrScheduleHasReplace
	}

	return s.repo.Schedule.Delete(ctx, schedule.ScheduleID)
}

// ════════════════════════════════════════════════════════════
// GetDailyBoard — 值班看板
// ════════════════════════════════════════════════════════════
//
// 覆盖状态只作提示，不做强制：替班数 0 为 uncovered，小于应班数
// 为 partial，达到应班数为 covered。

func (s *scheduleService) GetDailyBoard(ctx context.Context, dateStr string) (*dto.DailyBoardResponse, error) {
	date, err := parseDate(dateStr, s.loc)
	if err != nil {
		return nil, ErrDateInvalid
	}

	drivers, err := s.repo.Driver.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询司机列表失败", zap.Error(err))
		return nil, err
	}

	schedules, err := s.repo.Schedule.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, err
	}
	scheduleByDriver := make(map[string]*model.Schedule, len(schedules))
	for i := range schedules {
		scheduleByDriver[schedules[i].DriverID] = &schedules[i]
	}

	board := &dto.DailyBoardResponse{
		Date: date.Format("2006-01-02"),
		Rows: make([]dto.DailyBoardRow, 0, len(drivers)),
	}

	if holiday, err := s.repo.Holiday.GetByDate(ctx, date); err == nil {
		board.IsHoliday = true
		board.Holiday = holiday.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	for i := range drivers {
		driver := &drivers[i]
		row := dto.DailyBoardRow{
			Driver: dto.DriverBrief{ID: driver.DriverID, Name: driver.Name, StaffID: driver.StaffID},
			Shifts: make([]dto.ShiftResponse, 0, len(driver.Shifts)),
		}
		for j := range driver.Shifts {
			as := &driver.Shifts[j]
			if as.Shift == nil {
				continue
			}
			row.Shifts = append(row.Shifts, dto.ShiftResponse{
				ID:        as.Shift.ShiftID,
				Name:      as.Shift.Name,
				StartTime: as.Shift.StartTime,
				EndTime:   as.Shift.EndTime,
				IsPrimary: as.IsPrimary,
			})
		}

		if schedule, ok := scheduleByDriver[driver.DriverID]; ok {
			row.Schedule = toScheduleResponse(schedule)
			if schedule.IsAbsent() {
				row.Replacements = make([]dto.ReplacementResponse, 0, len(schedule.Replacements))
				for k := range schedule.Replacements {
					row.Replacements = append(row.Replacements,
						*toReplacementResponse(&schedule.Replacements[k], schedule))
				}
				row.Coverage = coverageState(len(driver.Shifts), len(schedule.Replacements))
			}
		}

		board.Rows = append(board.Rows, row)
	}

	return board, nil
}

// coverageState 覆盖状态：以缺勤司机的应班数为分母
func coverageState(required, covered int) string {
	switch {
	case covered <= 0:
		return dto.CoverageUncovered
	case covered < required:
		return dto.CoveragePartial
	default:
		return dto.CoverageCovered
	}
}

func (s *scheduleService) GetMonthlyBoard(ctx context.Context, req *dto.MonthlyBoardRequest) (*dto.MonthlyBoardResponse, error) {
	first, last := monthRange(req.Year, req.Month, s.loc)

	var (
		schedules []model.Schedule
		err       error
	)
	if req.DriverID != "" {
		schedules, err = s.repo.Schedule.ListByDriverAndRange(ctx, req.DriverID, first, last)
	} else {
		schedules, err = s.repo.Schedule.ListByRange(ctx, first, last)
	}
	if err != nil {
		s.logger.Error("查询月历失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.MonthlyBoardResponse{
		Month: req.Month,
		Year:  req.Year,
		Items: make([]dto.ScheduleResponse, 0, len(schedules)),
	}
	for i := range schedules {
		item := toScheduleResponse(&schedules[i])
		if schedules[i].Driver != nil {
			item.Driver = &dto.DriverBrief{
				ID:      schedules[i].Driver.DriverID,
				Name:    schedules[i].Driver.Name,
				StaffID: schedules[i].Driver.StaffID,
			}
		}
		resp.Items = append(resp.Items, *item)
	}
	return resp, nil
}

func toScheduleResponse(s *model.Schedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:            s.ScheduleID,
		DriverID:      s.DriverID,
		Date:          s.Date.Format("2006-01-02"),
		IsDayOff:      s.IsDayOff,
		IsAnnualLeave: s.IsAnnualLeave,
		Remark:        s.Remark,
	}
}
