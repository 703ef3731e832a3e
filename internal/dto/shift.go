package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
type CreateShiftRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	StartTime string `json:"start_time" binding:"required,len=5"` // "HH:MM"
	EndTime   string `json:"end_time"   binding:"required,len=5"`
}

// UpdateShiftRequest 更新班次请求
type UpdateShiftRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	StartTime *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime   *string `json:"end_time"   binding:"omitempty,len=5"`
}

// ShiftResponse 班次信息响应
type ShiftResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsPrimary bool   `json:"is_primary,omitempty"` // 仅在司机班次列表中有意义
}
