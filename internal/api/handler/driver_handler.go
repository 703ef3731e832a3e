package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// DriverHandler 司机模块 HTTP 处理器
type DriverHandler struct {
	driverSvc service.DriverService
}

// NewDriverHandler 创建 DriverHandler
func NewDriverHandler(driverSvc service.DriverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

// CreateDriver 创建司机
// POST /api/v1/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	driver, err := h.driverSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}

	response.Created(c, driver)
}

// GetDriver 获取司机详情
// GET /api/v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "司机ID不能为空")
		return
	}

	driver, err := h.driverSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}

	response.OK(c, driver)
}

// ListDrivers 司机列表
// GET /api/v1/drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	var req dto.DriverListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	drivers, total, err := h.driverSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, drivers, total, req.GetPage(), req.GetPageSize())
}

// UpdateDriver 更新司机
// PUT /api/v1/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "司机ID不能为空")
		return
	}

	var req dto.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	driver, err := h.driverSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}

	response.OK(c, driver)
}

// DeleteDriver 删除司机
// DELETE /api/v1/drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "司机ID不能为空")
		return
	}

	if err := h.driverSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDriverError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignShifts 设置司机班次分配
// PUT /api/v1/drivers/:id/shifts
func (h *DriverHandler) AssignShifts(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "司机ID不能为空")
		return
	}

	var req dto.AssignShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	driver, err := h.driverSvc.AssignShifts(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}

	response.OK(c, driver)
}

// handleDriverError 统一处理司机模块业务错误
func (h *DriverHandler) handleDriverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDriverNotFound):
		response.NotFound(c, 12001, "司机不存在")
	case errors.Is(err, service.ErrStaffIDExists):
		response.Conflict(c, 12002, "该工号已被使用")
	case errors.Is(err, service.ErrAssignShiftNotFound):
		response.BadRequest(c, 12003, "分配的班次不存在")
	default:
		response.InternalError(c)
	}
}
