package model

// Driver 司机表 — 对应 drivers
type Driver struct {
	DriverID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"driver_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	StaffID       string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"staff_id"`
	CarNumber     *string `gorm:"type:varchar(50)"                               json:"car_number,omitempty"`
	ContactNumber *string `gorm:"type:varchar(50)"                               json:"contact_number,omitempty"`
	BaseModel

	// 关联
	Shifts []DriverShift `gorm:"foreignKey:DriverID" json:"shifts,omitempty"`
}

// TableName 指定表名
func (Driver) TableName() string { return "drivers" }

// DriverShift 司机-班次分配表 — 对应 driver_shifts
type DriverShift struct {
	DriverShiftID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"driver_shift_id"`
	DriverID      string `gorm:"type:uuid;not null;uniqueIndex:uq_driver_shifts"      json:"driver_id"`
	ShiftID       string `gorm:"type:uuid;not null;uniqueIndex:uq_driver_shifts"      json:"shift_id"`
	IsPrimary     bool   `gorm:"not null;default:false"                               json:"is_primary"`
	BaseModel

	// 关联
	Shift *Shift `gorm:"foreignKey:ShiftID;references:ShiftID" json:"shift,omitempty"`
}

// TableName 指定表名
func (DriverShift) TableName() string { return "driver_shifts" }
