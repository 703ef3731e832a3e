package dto

// ── 加班模块 DTO ──

// OvertimeListRequest 加班记录查询参数
type OvertimeListRequest struct {
	DriverID string `form:"driver_id" binding:"omitempty,uuid"`
	Month    int    `form:"month"     binding:"required,min=1,max=12"`
	Year     int    `form:"year"      binding:"required,min=2000"`
}

// OvertimeResponse 单条加班记录响应
// Hours/Rate/Weighted 以字符串承载 decimal，避免前端浮点误差
type OvertimeResponse struct {
	ID       string       `json:"id"`
	DriverID string       `json:"driver_id"`
	Driver   *DriverBrief `json:"driver,omitempty"`
	Date     string       `json:"date"`
	Hours    string       `json:"hours"`
	OTType   string       `json:"ot_type"`
	OTRate   string       `json:"ot_rate"`
}

// OvertimeSummaryResponse 月度加班汇总响应
type OvertimeSummaryResponse struct {
	Month   int                     `json:"month"`
	Year    int                     `json:"year"`
	Drivers []OvertimeDriverSummary `json:"drivers"`
}

// OvertimeDriverSummary 单个司机的月度加班汇总
type OvertimeDriverSummary struct {
	Driver        DriverBrief `json:"driver"`
	TotalHours    string      `json:"total_hours"`
	WeightedHours string      `json:"weighted_hours"` // Σ hours × rate
}
