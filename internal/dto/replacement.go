package dto

// ── 替班模块 DTO ──

// AssignReplacementRequest 指派替班请求
type AssignReplacementRequest struct {
	ScheduleID          string `json:"schedule_id"           binding:"required,uuid"`
	ReplacementDriverID string `json:"replacement_driver_id" binding:"required,uuid"`
	ShiftID             string `json:"shift_id"              binding:"required,uuid"`
}

// UpdateReplacementRequest 改派替班请求
type UpdateReplacementRequest struct {
	ReplacementDriverID string `json:"replacement_driver_id" binding:"required,uuid"`
}

// ReplacementListRequest 替班列表查询参数
type ReplacementListRequest struct {
	Date string `form:"date" binding:"required"`
}

// ReplacementResponse 替班信息响应
type ReplacementResponse struct {
	ID                string         `json:"id"`
	ScheduleID        string         `json:"schedule_id"`
	Date              string         `json:"date,omitempty"`
	OriginalDriver    *DriverBrief   `json:"original_driver,omitempty"`
	ReplacementDriver *DriverBrief   `json:"replacement_driver,omitempty"`
	Shift             *ShiftResponse `json:"shift,omitempty"`
}
