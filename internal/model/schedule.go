package model

import "time"

// Schedule 日程状态表 — 对应 schedules
// 记录司机在某个日历日的状态。(driver_id, date) 全库唯一；
// is_day_off 与 is_annual_leave 按约定互斥（由 Service 层写入时保证）。
type Schedule struct {
	ScheduleID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"schedule_id"`
	DriverID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_schedules_driver_date" json:"driver_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uq_schedules_driver_date" json:"date"`
	IsDayOff      bool      `gorm:"not null;default:false"                                  json:"is_day_off"`
	IsAnnualLeave bool      `gorm:"not null;default:false"                                  json:"is_annual_leave"`
	Remark        string    `gorm:"type:varchar(500)"                                       json:"remark,omitempty"`
	BaseModel

	// 关联
	Driver       *Driver       `gorm:"foreignKey:DriverID;references:DriverID" json:"driver,omitempty"`
	Replacements []Replacement `gorm:"foreignKey:ScheduleID"                   json:"replacements,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// IsAbsent 司机当日是否缺勤（休息日或年假）
func (s *Schedule) IsAbsent() bool {
	return s.IsDayOff || s.IsAnnualLeave
}
