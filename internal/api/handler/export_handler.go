package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"driver-roster/backend/internal/service"
	"driver-roster/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDailyRoster 导出某日值班表
// GET /api/v1/export/roster?date=2026-08-24
func (h *ExportHandler) ExportDailyRoster(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportDailyRoster(c.Request.Context(), date)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// DriverCalendar 司机月度 iCalendar 日程
// GET /api/v1/export/calendar/:driver_id?month=8&year=2026
func (h *ExportHandler) DriverCalendar(c *gin.Context) {
	driverID := c.Param("driver_id")
	if driverID == "" {
		response.BadRequest(c, 10001, "driver_id 不能为空")
		return
	}
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

	content, filename, err := h.exportSvc.DriverCalendar(c.Request.Context(), driverID, month, year)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10003, "日期格式无效")
	case errors.Is(err, service.ErrExportNoDrivers):
		response.NotFound(c, 19001, "暂无司机，无法生成值班表")
	case errors.Is(err, service.ErrDriverNotFound):
		response.NotFound(c, 12001, "司机不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
