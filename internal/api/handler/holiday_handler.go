package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// HolidayHandler 节假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// CreateHoliday 登记节假日
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.Created(c, holiday)
}

// ListHolidays 按年列出节假日
// GET /api/v1/holidays?year=2026
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var req dto.HolidayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holidays, err := h.holidaySvc.ListByYear(c.Request.Context(), req.Year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": holidays})
}

// DeleteHoliday 删除节假日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "节假日ID不能为空")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleHolidayError 统一处理节假日模块业务错误
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10003, "日期格式无效")
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 18001, "节假日不存在")
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 18002, "该日期已登记节假日")
	default:
		response.InternalError(c)
	}
}
