package handler

import "driver-roster/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	Driver        *DriverHandler
	Shift         *ShiftHandler
	Schedule      *ScheduleHandler
	DayoffPattern *DayoffPatternHandler
	Replacement   *ReplacementHandler
	Overtime      *OvertimeHandler
	Holiday       *HolidayHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Driver:        NewDriverHandler(svc.Driver),
		Shift:         NewShiftHandler(svc.Shift),
		Schedule:      NewScheduleHandler(svc.Schedule),
		DayoffPattern: NewDayoffPatternHandler(svc.DayoffPattern),
		Replacement:   NewReplacementHandler(svc.Replacement),
		Overtime:      NewOvertimeHandler(svc.Overtime),
		Holiday:       NewHolidayHandler(svc.Holiday),
		Export:        NewExportHandler(svc.Export),
	}
}
