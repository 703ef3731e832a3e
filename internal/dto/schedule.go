package dto

// ── 日程模块 DTO ──

// 日程状态取值
const (
	StatusDayOff      = "day_off"
	StatusAnnualLeave = "annual_leave"
)

// MarkStatusRequest 标记司机某日状态请求
type MarkStatusRequest struct {
	DriverID string `json:"driver_id" binding:"required,uuid"`
	Date     string `json:"date"      binding:"required"` // "2006-01-02"
	Status   string `json:"status"    binding:"required,oneof=day_off annual_leave"`
	Remark   string `json:"remark"    binding:"omitempty,max=500"`
}

// ClearStatusRequest 清除司机某日状态请求
type ClearStatusRequest struct {
	DriverID string `json:"driver_id" binding:"required,uuid"`
	Date     string `json:"date"      binding:"required"`
}

// DailyBoardRequest 值班看板查询参数
type DailyBoardRequest struct {
	Date string `form:"date" binding:"required"`
}

// MonthlyBoardRequest 月历查询参数
type MonthlyBoardRequest struct {
	DriverID string `form:"driver_id" binding:"omitempty,uuid"`
	Month    int    `form:"month"     binding:"required,min=1,max=12"`
	Year     int    `form:"year"      binding:"required,min=2000"`
}

// ── 响应 ──

// 替班覆盖状态
const (
	CoverageUncovered = "uncovered" // 无任何替班
	CoveragePartial   = "partial"   // 部分班次有替班
	CoverageCovered   = "covered"   // 全部班次已有替班
)

// ScheduleResponse 单条日程响应
type ScheduleResponse struct {
	ID            string       `json:"id"`
	DriverID      string       `json:"driver_id"`
	Driver        *DriverBrief `json:"driver,omitempty"`
	Date          string       `json:"date"`
	IsDayOff      bool         `json:"is_day_off"`
	IsAnnualLeave bool         `json:"is_annual_leave"`
	Remark        string       `json:"remark,omitempty"`
}

// DailyBoardResponse 值班看板响应
type DailyBoardResponse struct {
	Date      string          `json:"date"`
	IsHoliday bool            `json:"is_holiday"`
	Holiday   string          `json:"holiday,omitempty"`
	Rows      []DailyBoardRow `json:"rows"`
}

// DailyBoardRow 看板中一位司机的当日状态
type DailyBoardRow struct {
	Driver       DriverBrief           `json:"driver"`
	Shifts       []ShiftResponse       `json:"shifts"`
	Schedule     *ScheduleResponse     `json:"schedule,omitempty"`
	Replacements []ReplacementResponse `json:"replacements,omitempty"`
	Coverage     string                `json:"coverage,omitempty"` // 仅缺勤司机有值
}

// MonthlyBoardResponse 月历响应
type MonthlyBoardResponse struct {
	Month int                `json:"month"`
	Year  int                `json:"year"`
	Items []ScheduleResponse `json:"items"`
}
