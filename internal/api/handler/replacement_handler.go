package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// ReplacementHandler 替班模块 HTTP 处理器
type ReplacementHandler struct {
	replacementSvc service.ReplacementService
}

// NewReplacementHandler 创建 ReplacementHandler
func NewReplacementHandler(replacementSvc service.ReplacementService) *ReplacementHandler {
	return &ReplacementHandler{replacementSvc: replacementSvc}
}

// AssignReplacement 指派替班
// POST /api/v1/replacements
func (h *ReplacementHandler) AssignReplacement(c *gin.Context) {
	var req dto.AssignReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	replacement, err := h.replacementSvc.Assign(c.Request.Context(), &req)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.Created(c, replacement)
}

// UpdateReplacement 改派替班司机
// PUT /api/v1/replacements/:id
func (h *ReplacementHandler) UpdateReplacement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "替班ID不能为空")
		return
	}

	var req dto.UpdateReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	replacement, err := h.replacementSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, replacement)
}

// DeleteReplacement 撤销替班
// DELETE /api/v1/replacements/:id
func (h *ReplacementHandler) DeleteReplacement(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "替班ID不能为空")
		return
	}

	if err := h.replacementSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListReplacements 按日期列出替班
// GET /api/v1/replacements?date=2026-08-24
func (h *ReplacementHandler) ListReplacements(c *gin.Context) {
	var req dto.ReplacementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	replacements, err := h.replacementSvc.ListByDate(c.Request.Context(), req.Date)
	if err != nil {
		h.handleReplacementError(c, err)
		return
	}

	response.OK(c, gin.H{"list": replacements})
}

// handleReplacementError 统一处理替班模块业务错误
func (h *ReplacementHandler) handleReplacementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10003, "日期格式无效")
	case errors.Is(err, service.ErrReplacementNotFound):
		response.NotFound(c, 16001, "替班记录不存在")
	case errors.Is(err, service.ErrReplacementExists):
		response.Conflict(c, 16002, "该班次已有替班司机")
	case errors.Is(err, service.ErrScheduleNotAbsent):
		response.BadRequest(c, 16003, "该日程未标记休息日或年假")
	case errors.Is(err, service.ErrReplacementSelf):
		response.BadRequest(c, 16004, "替班司机不能是缺勤司机本人")
	case errors.Is(err, service.ErrReplacementDriverGone):
		response.NotFound(c, 16005, "替班司机不存在")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14001, "日程不存在")
	default:
		response.InternalError(c)
	}
}
