package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Driver        DriverRepository
	DriverShift   DriverShiftRepository
	Shift         ShiftRepository
	Schedule      ScheduleRepository
	Replacement   ReplacementRepository
	Overtime      OvertimeRepository
	DayoffPattern DayoffPatternRepository
	Holiday       HolidayRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Driver:        NewDriverRepo(db),
		DriverShift:   NewDriverShiftRepo(db),
		Shift:         NewShiftRepo(db),
		Schedule:      NewScheduleRepo(db),
		Replacement:   NewReplacementRepo(db),
		Overtime:      NewOvertimeRepo(db),
		DayoffPattern: NewDayoffPatternRepo(db),
		Holiday:       NewHolidayRepo(db),
	}
}
