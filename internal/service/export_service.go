package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"driver-roster/backend/internal/model"
	"driver-roster/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoDrivers    = errors.New("暂无司机，无法生成值班表")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 值班表导出为 Excel (.xlsx)，按班次分块，每块列出该班次的司机
//   - 司机个人日程导出为 iCalendar (.ics)，休息日/年假/替班均为全天事件
//   - 导出以 bytes.Buffer / string 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportDailyRoster 导出某日值班表为 Excel
	ExportDailyRoster(ctx context.Context, date string) (*bytes.Buffer, string, error)
	// DriverCalendar 生成司机某月的 iCalendar 日程
	DriverCalendar(ctx context.Context, driverID string, month, year int) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDailyRoster — 导出某日值班表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：日期 + 星期 + 节假日名（如有）
//   - 按班次分块，块头为 "班次名 HH:MM-HH:MM"
//   - 块内每行一位司机：
//     | No | Day off | Car Number | Driver Name | AL&OFF | Replacement | Remark | Contact |
//   - Day off 列为该司机当月规律的星期名；AL&OFF 列为当日状态
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportDailyRoster(ctx context.Context, dateStr string) (*bytes.Buffer, string, error) {
	date, err := parseDate(dateStr, s.loc)
	if err != nil {
		return nil, "", ErrDateInvalid
	}

	drivers, err := s.repo.Driver.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询司机列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(drivers) == 0 {
		return nil, "", ErrExportNoDrivers
	}

	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, "", err
	}
	scheduleByDriver := make(map[string]*model.Schedule, len(schedules))
	for i := range schedules {
		scheduleByDriver[schedules[i].DriverID] = &schedules[i]
	}

	// 当月规律：Day off 列显示司机的固定休息星期名
	patterns, err := s.repo.DayoffPattern.ListByMonthYear(ctx, int(date.Month()), date.Year())
	if err != nil {
		s.logger.Error("查询休息日规律失败", zap.Error(err))
		return nil, "", err
	}
	dayOffName := make(map[string]string, len(patterns))
	for i := range patterns {
		dayOffName[patterns[i].DriverID] = time.Weekday(patterns[i].DayOfWeek).String()
	}

	// 1. 工作簿与样式
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Roster"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{6, 12, 14, 22, 10, 22, 24, 16}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	blockStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})

	// 2. 标题行
	title := fmt.Sprintf("Daily Roster — %s (%s)", date.Format("2006-01-02"), date.Weekday())
	if holiday, err := s.repo.Holiday.GetByDate(ctx, date); err == nil {
		title += " — " + holiday.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, "", err
	}
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 3. 按班次分块写入
	headers := []string{"No", "Day off", "Car Number", "Driver Name", "AL&OFF", "Replacement", "Remark", "Contact"}
	row := 3
	for i := range shifts {
		shift := &shifts[i]

		blockCell := cell("A", row)
		f.SetCellValue(sheetName, blockCell, fmt.Sprintf("%s  %s-%s", shift.Name, shift.StartTime, shift.EndTime))
		f.MergeCell(sheetName, blockCell, cell("H", row))
		f.SetCellStyle(sheetName, blockCell, blockCell, blockStyle)
		row++

		for c, h := range headers {
			f.SetCellValue(sheetName, cell(colName(c), row), h)
			f.SetCellStyle(sheetName, cell(colName(c), row), cell(colName(c), row), headerStyle)
		}
		row++

		no := 1
		for j := range drivers {
			driver := &drivers[j]
			if !driverHasShift(driver, shift.ShiftID) {
				continue
			}

			status := ""
			replacementName := ""
			remark := ""
			if schedule, ok := scheduleByDriver[driver.DriverID]; ok {
				remark = schedule.Remark
				switch {
				case schedule.IsAnnualLeave:
					status = "AL"
				case schedule.IsDayOff:
					status = "OFF"
				}
				for k := range schedule.Replacements {
					rep := &schedule.Replacements[k]
					if rep.ShiftID == shift.ShiftID && rep.ReplacementDriver != nil {
						replacementName = rep.ReplacementDriver.Name
					}
				}
			}

			f.SetCellValue(sheetName, cell("A", row), no)
			f.SetCellValue(sheetName, cell("B", row), dayOffName[driver.DriverID])
			f.SetCellValue(sheetName, cell("C", row), strOrEmpty(driver.CarNumber))
			f.SetCellValue(sheetName, cell("D", row), driver.Name)
			f.SetCellValue(sheetName, cell("E", row), status)
			f.SetCellValue(sheetName, cell("F", row), replacementName)
			f.SetCellValue(sheetName, cell("G", row), remark)
			f.SetCellValue(sheetName, cell("H", row), strOrEmpty(driver.ContactNumber))
			no++
			row++
		}

		row++ // 块间空行
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("roster_%s.xlsx", date.Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// DriverCalendar — 司机月度日程 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 事件类型（均为全天事件）：
//   - Day off / Annual leave：来自日程行
//   - Replacement duty：该司机承接的替班，摘要含班次与被替司机

func (s *exportService) DriverCalendar(ctx context.Context, driverID string, month, year int) (string, string, error) {
	driver, err := s.repo.Driver.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrDriverNotFound
		}
		s.logger.Error("查询司机失败", zap.Error(err))
		return "", "", err
	}

	first, last := monthRange(year, month, s.loc)

	schedules, err := s.repo.Schedule.ListByDriverAndRange(ctx, driverID, first, last)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return "", "", err
	}
	duties, err := s.repo.Replacement.ListByDriverAndRange(ctx, driverID, first, last)
	if err != nil {
		s.logger.Error("查询替班失败", zap.Error(err))
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//driver-roster//roster//EN")

	now := time.Now()
	for i := range schedules {
		schedule := &schedules[i]
		if !schedule.IsAbsent() {
			continue
		}

		summary := driver.Name + " — Day off"
		if schedule.IsAnnualLeave {
			summary = driver.Name + " — Annual leave"
		}

		event := cal.AddEvent("schedule-" + schedule.ScheduleID + "@driver-roster")
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(schedule.Date)
		event.SetAllDayEndAt(schedule.Date.AddDate(0, 0, 1))
		event.SetSummary(summary)
		if schedule.Remark != "" {
			event.SetDescription(schedule.Remark)
		}
	}

	for i := range duties {
		duty := &duties[i]
		if duty.Schedule == nil {
			continue
		}

		summary := driver.Name + " — Replacement duty"
		if duty.Shift != nil {
			summary += fmt.Sprintf(" (%s %s-%s)", duty.Shift.Name, duty.Shift.StartTime, duty.Shift.EndTime)
		}
		if duty.Schedule.Driver != nil {
			summary += " for " + duty.Schedule.Driver.Name
		}

		event := cal.AddEvent("replacement-" + duty.ReplacementID + "@driver-roster")
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(duty.Schedule.Date)
		event.SetAllDayEndAt(duty.Schedule.Date.AddDate(0, 0, 1))
		event.SetSummary(summary)
	}

	filename := fmt.Sprintf("roster_%s_%04d-%02d.ics", driver.StaffID, year, month)
	return cal.Serialize(), filename, nil
}

// ── 辅助函数 ──

func driverHasShift(d *model.Driver, shiftID string) bool {
	for i := range d.Shifts {
		if d.Shifts[i].ShiftID == shiftID {
			return true
		}
	}
	return false
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
