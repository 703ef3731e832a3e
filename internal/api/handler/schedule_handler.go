package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// ScheduleHandler 日程模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// MarkStatus 标记司机某日状态
// PUT /api/v1/schedules/status
func (h *ScheduleHandler) MarkStatus(c *gin.Context) {
	var req dto.MarkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.MarkStatus(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ClearStatus 清除司机某日状态
// DELETE /api/v1/schedules/status
func (h *ScheduleHandler) ClearStatus(c *gin.Context) {
	var req dto.ClearStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.scheduleSvc.ClearStatus(c.Request.Context(), &req); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetDailyBoard 值班看板
// GET /api/v1/schedules/board?date=2026-08-24
func (h *ScheduleHandler) GetDailyBoard(c *gin.Context) {
	var req dto.DailyBoardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	board, err := h.scheduleSvc.GetDailyBoard(c.Request.Context(), req.Date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, board)
}

// GetMonthlyBoard 月历
// GET /api/v1/schedules/monthly?month=8&year=2026&driver_id=xxx
func (h *ScheduleHandler) GetMonthlyBoard(c *gin.Context) {
	var req dto.MonthlyBoardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	board, err := h.scheduleSvc.GetMonthlyBoard(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, board)
}

// handleScheduleError 统一处理日程模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10003, "日期格式无效")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14001, "日程不存在")
	case errors.Is(err, service.ErrScheduleDriverGone):
		response.NotFound(c, 14002, "司机不存在")
	case errors.Is(err, service.ErrScheduleHasReplace):
		response.Conflict(c, 14003, "该日程已有替班记录，请先撤销替班")
	default:
		response.InternalError(c)
	}
}
