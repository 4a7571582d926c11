package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fosms/backend/config"
	"fosms/backend/internal/api/handler"
	"fosms/backend/internal/api/middleware"
	"fosms/backend/pkg/jwt"
	"fosms/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单与限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查与指标 ──
	r.GET("/health", healthCheck(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := middleware.Gate(middleware.LevelPublic, jwtMgr, rdb)
	authenticated := middleware.Gate(middleware.LevelAuthenticated, jwtMgr, rdb)
	admin := middleware.Gate(middleware.LevelAdmin, jwtMgr, rdb)
	authLimit := middleware.RateLimit(rdb, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			open := auth.Group("", public...)
			open.POST("/sign-up", authLimit, h.Auth.SignUp)
			open.POST("/sign-in", authLimit, h.Auth.SignIn)

			session := auth.Group("", authenticated...)
			session.POST("/sign-out", h.Auth.SignOut)
			session.GET("/me", h.Auth.Me)
		}

		// 用户模块：静态路径先于 /:id 注册
		users := v1.Group("/users")
		{
			self := users.Group("", authenticated...)
			self.GET("/colleagues", h.User.ListColleagues)
			self.PUT("/me", h.User.UpdateMe)
			self.GET("/:id", h.User.Get)

			managed := users.Group("", admin...)
			managed.POST("", h.User.Create)
			managed.GET("", h.User.List)
			managed.PUT("/:id", h.User.Update)
		}

		// 排班模块
		shifts := v1.Group("/shifts")
		{
			viewer := shifts.Group("", authenticated...)
			viewer.GET("/my", h.Shift.ListMine)
			viewer.GET("/my/calendar.ics", h.Shift.Calendar)
			viewer.GET("", h.Shift.ListAll)

			shifts.Group("", admin...).POST("", h.Shift.Assign)
		}

		// 换班模块
		swaps := v1.Group("/swaps")
		{
			requester := swaps.Group("", authenticated...)
			requester.POST("", h.Swap.Create)
			requester.GET("/my", h.Swap.ListMine)

			reviewer := swaps.Group("", admin...)
			reviewer.GET("", h.Swap.ListAll)
			reviewer.PUT("/:id/process", h.Swap.Process)
		}

		// 导出模块
		v1.Group("/export", admin...).GET("/shifts", h.Export.ExportShifts)
	}

	return r
}

// healthCheck 数据库不可达时返回 503；Redis 仅报告状态，不影响可用性
func healthCheck(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok", "database": "up", "redis": "up"}
		if rdb == nil {
			status["redis"] = "degraded"
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["status"] = "unavailable"
			status["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}

		c.JSON(http.StatusOK, status)
	}
}
