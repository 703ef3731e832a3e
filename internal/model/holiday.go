package model

import "time"

// Holiday 节假日表 — 对应 holidays
type Holiday struct {
	HolidayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"date"`
	Name      string    `gorm:"type:varchar(200);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
