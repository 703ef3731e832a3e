package dto

// ── 月度休息日规律 DTO ──

// SetPatternRequest 设置（新建或修改）休息日规律请求
// DayOfWeek 约定 0=周日 … 6=周六
type SetPatternRequest struct {
	DriverID  string `json:"driver_id"   binding:"required,uuid"`
	Month     int    `json:"month"       binding:"required,min=1,max=12"`
	Year      int    `json:"year"        binding:"required,min=2000"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
}

// PatternListRequest 规律列表查询参数
type PatternListRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year"  binding:"required,min=2000"`
}

// PatternResponse 休息日规律响应
type PatternResponse struct {
	ID        string       `json:"id"`
	DriverID  string       `json:"driver_id"`
	Driver    *DriverBrief `json:"driver,omitempty"`
	Month     int          `json:"month"`
	Year      int          `json:"year"`
	DayOfWeek int          `json:"day_of_week"`
	Generated int          `json:"generated"` // 本次展开生成/覆盖的休息日数量
}
