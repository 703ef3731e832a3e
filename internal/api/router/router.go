package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"driver-roster/backend/config"
	"driver-roster/backend/internal/api/handler"
	"driver-roster/backend/internal/api/middleware"
	"driver-roster/backend/pkg/jwt"
	"driver-roster/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
//
// 角色约定：admin 全权限；dispatcher 可写排班数据；viewer 只读。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	canWrite := middleware.RoleAuth("admin", "dispatcher")

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 司机模块
			drivers := authorized.Group("/drivers")
			{
				drivers.GET("", h.Driver.ListDrivers)
				drivers.GET("/:id", h.Driver.GetDriver)
				drivers.POST("", canWrite, h.Driver.CreateDriver)
				drivers.PUT("/:id", canWrite, h.Driver.UpdateDriver)
				drivers.DELETE("/:id", middleware.RoleAuth("admin"), h.Driver.DeleteDriver)
				drivers.PUT("/:id/shifts", canWrite, h.Driver.AssignShifts)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.POST("", canWrite, h.Shift.CreateShift)
				shifts.PUT("/:id", canWrite, h.Shift.UpdateShift)
				shifts.DELETE("/:id", middleware.RoleAuth("admin"), h.Shift.DeleteShift)
			}

			// 日程模块
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/board", h.Schedule.GetDailyBoard)
				schedules.GET("/monthly", h.Schedule.GetMonthlyBoard)
				schedules.PUT("/status", canWrite, h.Schedule.MarkStatus)
				schedules.DELETE("/status", canWrite, h.Schedule.ClearStatus)
			}

			// 休息日规律模块
			patterns := authorized.Group("/dayoff-patterns")
			{
				patterns.GET("", h.DayoffPattern.ListPatterns)
				patterns.PUT("", canWrite, h.DayoffPattern.SetPattern)
				patterns.DELETE("/:id", canWrite, h.DayoffPattern.DeletePattern)
			}

			// 替班模块
			replacements := authorized.Group("/replacements")
			{
				replacements.GET("", h.Replacement.ListReplacements)
				replacements.POST("", canWrite, h.Replacement.AssignReplacement)
				replacements.PUT("/:id", canWrite, h.Replacement.UpdateReplacement)
				replacements.DELETE("/:id", canWrite, h.Replacement.DeleteReplacement)
			}

			// 加班台账（只读）
			overtime := authorized.Group("/overtime")
			{
				overtime.GET("", h.Overtime.ListOvertime)
				overtime.GET("/summary", h.Overtime.GetMonthlySummary)
			}

			// 节假日模块
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListHolidays)
				holidays.POST("", canWrite, h.Holiday.CreateHoliday)
				holidays.DELETE("/:id", canWrite, h.Holiday.DeleteHoliday)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster", h.Export.ExportDailyRoster)
				export.GET("/calendar/:driver_id", h.Export.DriverCalendar)
			}
		}
	}

	return r
}
