package model

// MonthlyDayoffPattern 月度休息日规律表 — 对应 driver_monthly_dayoff
// "司机 X 在 year 年 month 月每逢星期 day_of_week 休息"。
// 每位司机每月仅允许一条规律：(driver_id, month, year) 唯一。
// DayOfWeek 约定 0=周日 … 6=周六，与 time.Weekday 一致。
type MonthlyDayoffPattern struct {
	PatternID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                      json:"pattern_id"`
	DriverID  string `gorm:"type:uuid;not null;uniqueIndex:uq_dayoff_pattern_driver_month"       json:"driver_id"`
	Month     int    `gorm:"type:smallint;not null;uniqueIndex:uq_dayoff_pattern_driver_month"   json:"month"`
	Year      int    `gorm:"type:smallint;not null;uniqueIndex:uq_dayoff_pattern_driver_month"   json:"year"`
	DayOfWeek int    `gorm:"type:smallint;not null"                                              json:"day_of_week"`
	BaseModel

	// 关联
	Driver *Driver `gorm:"foreignKey:DriverID;references:DriverID" json:"driver,omitempty"`
}

// TableName 指定表名
func (MonthlyDayoffPattern) TableName() string { return "driver_monthly_dayoff" }
