package model

// Replacement 替班表 — 对应 replacements
// 一条记录表示某位司机替缺勤司机顶一个班次。
// 单替班模型：(schedule_id, shift_id) 唯一。
type Replacement struct {
	ReplacementID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                    json:"replacement_id"`
	ScheduleID          string `gorm:"type:uuid;not null;uniqueIndex:uq_replacements_schedule_shift"     json:"schedule_id"`
	ReplacementDriverID string `gorm:"type:uuid;not null"                                                json:"replacement_driver_id"`
	ShiftID             string `gorm:"type:uuid;not null;uniqueIndex:uq_replacements_schedule_shift"     json:"shift_id"`
	BaseModel

	// 关联
	Schedule          *Schedule `gorm:"foreignKey:ScheduleID;references:ScheduleID"          json:"schedule,omitempty"`
	ReplacementDriver *Driver   `gorm:"foreignKey:ReplacementDriverID;references:DriverID"   json:"replacement_driver,omitempty"`
	Shift             *Shift    `gorm:"foreignKey:ShiftID;references:ShiftID"                json:"shift,omitempty"`
}

// TableName 指定表名
func (Replacement) TableName() string { return "replacements" }
