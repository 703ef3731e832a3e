package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// DayoffPatternHandler 休息日规律模块 HTTP 处理器
type DayoffPatternHandler struct {
	patternSvc service.DayoffPatternService
}

// NewDayoffPatternHandler 创建 DayoffPatternHandler
func NewDayoffPatternHandler(patternSvc service.DayoffPatternService) *DayoffPatternHandler {
	return &DayoffPatternHandler{patternSvc: patternSvc}
}

// SetPattern 设置（新建或修改）规律并展开为当月休息日
// PUT /api/v1/dayoff-patterns
func (h *DayoffPatternHandler) SetPattern(c *gin.Context) {
	var req dto.SetPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pattern, err := h.patternSvc.SetPattern(c.Request.Context(), &req)
	if err != nil {
		h.handlePatternError(c, err)
		return
	}

	response.OK(c, pattern)
}

// DeletePattern 删除规律及其生成的休息日
// DELETE /api/v1/dayoff-patterns/:id
func (h *DayoffPatternHandler) DeletePattern(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规律ID不能为空")
		return
	}

	if err := h.patternSvc.DeletePattern(c.Request.Context(), id); err != nil {
		h.handlePatternError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListPatterns 按月列出规律
// GET /api/v1/dayoff-patterns?month=8&year=2026
func (h *DayoffPatternHandler) ListPatterns(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, 10001, "month 参数无效")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		response.BadRequest(c, 10001, "year 参数无效")
		return
	}

	patterns, err := h.patternSvc.ListPatterns(c.Request.Context(), month, year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": patterns})
}

// handlePatternError 统一处理休息日规律模块业务错误
func (h *DayoffPatternHandler) handlePatternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPatternNotFound):
		response.NotFound(c, 15001, "休息日规律不存在")
	case errors.Is(err, service.ErrPatternYearPast):
		response.BadRequest(c, 15002, "不能为过去的年份设置规律")
	case errors.Is(err, service.ErrPatternDriverGone):
		response.NotFound(c, 15003, "司机不存在")
	default:
		response.InternalError(c)
	}
}
