package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 加班类型
const (
	OTTypeReplacement = "replacement" // 替班产生的加班
)

// OvertimeRecord 加班记录表 — 对应 overtime_records
// 同一 (driver_id, date, ot_type) 只有一条记录，Hours 单调累加合并。
// 金额相关字段使用 decimal 避免浮点误差。
type OvertimeRecord struct {
	OvertimeID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                   json:"overtime_id"`
	DriverID   string          `gorm:"type:uuid;not null;uniqueIndex:uq_overtime_driver_date_type"      json:"driver_id"`
	Date       time.Time       `gorm:"type:date;not null;uniqueIndex:uq_overtime_driver_date_type"      json:"date"`
	Hours      decimal.Decimal `gorm:"type:numeric(6,2);not null"                                       json:"hours"`
	OTType     string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_overtime_driver_date_type" json:"ot_type"`
	OTRate     decimal.Decimal `gorm:"type:numeric(4,2);not null"                                       json:"ot_rate"`
	BaseModel

	// 关联
	Driver *Driver `gorm:"foreignKey:DriverID;references:DriverID" json:"driver,omitempty"`
}

// TableName 指定表名
func (OvertimeRecord) TableName() string { return "overtime_records" }
