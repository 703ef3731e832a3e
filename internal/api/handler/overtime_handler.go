package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/dto"
	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// OvertimeHandler 加班台账 HTTP 处理器
type OvertimeHandler struct {
	overtimeSvc service.OvertimeService
}

// NewOvertimeHandler 创建 OvertimeHandler
func NewOvertimeHandler(overtimeSvc service.OvertimeService) *OvertimeHandler {
	return &OvertimeHandler{overtimeSvc: overtimeSvc}
}

// ListOvertime 按月列出加班记录
// GET /api/v1/overtime?month=8&year=2026&driver_id=xxx
func (h *OvertimeHandler) ListOvertime(c *gin.Context) {
	var req dto.OvertimeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, err := h.overtimeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// GetMonthlySummary 月度加班汇总
// GET /api/v1/overtime/summary?month=8&year=2026
func (h *OvertimeHandler) GetMonthlySummary(c *gin.Context) {
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

	summary, err := h.overtimeSvc.MonthlySummary(c.Request.Context(), month, year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}
