package model

// Shift 班次表 — 对应 shifts
// StartTime/EndTime 为 "HH:MM" 格式的当日时间窗口
type Shift struct {
	ShiftID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	StartTime string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	BaseModel
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }
