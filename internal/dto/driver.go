package dto

// ── 司机模块 DTO ──

// CreateDriverRequest 创建司机请求
type CreateDriverRequest struct {
	Name          string  `json:"name"           binding:"required,min=1,max=100"`
	StaffID       string  `json:"staff_id"       binding:"required,min=1,max=50"`
	CarNumber     *string `json:"car_number"     binding:"omitempty,max=50"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=50"`
}

// UpdateDriverRequest 更新司机请求
type UpdateDriverRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=1,max=100"`
	CarNumber     *string `json:"car_number"     binding:"omitempty,max=50"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=50"`
}

// AssignShiftsRequest 设置司机的班次分配请求
// 整体替换：请求中的列表即该司机的全部班次
type AssignShiftsRequest struct {
	Shifts []ShiftAssignment `json:"shifts" binding:"required,dive"`
}

// ShiftAssignment 单条班次分配
type ShiftAssignment struct {
	ShiftID   string `json:"shift_id"   binding:"required,uuid"`
	IsPrimary bool   `json:"is_primary"`
}

// DriverListRequest 司机列表查询参数
type DriverListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	PaginationRequest
}

// ── 响应 ──

// DriverResponse 司机信息响应
type DriverResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StaffID       string          `json:"staff_id"`
	CarNumber     *string         `json:"car_number,omitempty"`
	ContactNumber *string         `json:"contact_number,omitempty"`
	Shifts        []ShiftResponse `json:"shifts,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// DriverBrief 司机简要信息
type DriverBrief struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StaffID string `json:"staff_id"`
}
