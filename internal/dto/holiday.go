package dto

// ── 节假日模块 DTO ──

// CreateHolidayRequest 创建节假日请求
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"` // "2006-01-02"
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// HolidayListRequest 节假日列表查询参数
type HolidayListRequest struct {
	Year int `form:"year" binding:"required,min=2000"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
