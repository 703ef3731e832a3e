package service

import (
	"time"

	"go.uber.org/zap"

	"driver-roster/backend/config"
	"driver-roster/backend/internal/repository"
	"driver-roster/backend/pkg/jwt"
	"driver-roster/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth          AuthService
	Driver        DriverService
	Shift         ShiftService
	Schedule      ScheduleService
	DayoffPattern DayoffPatternService
	Replacement   ReplacementService
	Overtime      OvertimeService
	Holiday       HolidayService
	Export        ExportService
}

// NewService 创建 Service 聚合
// loc 为排班日期换算的固定参照时区，由启动时从配置加载
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:          NewAuthService(repo, jwtMgr, cache, &cfg.Auth, logger),
		Driver:        NewDriverService(repo, logger),
		Shift:         NewShiftService(repo, logger),
		Schedule:      NewScheduleService(repo, loc, logger),
		DayoffPattern: NewDayoffPatternService(repo, loc, logger),
		Replacement:   NewReplacementService(repo, loc, logger),
		Overtime:      NewOvertimeService(repo, loc, logger),
		Holiday:       NewHolidayService(repo, loc, logger),
		Export:        NewExportService(repo, loc, logger),
	}
}
