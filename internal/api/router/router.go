package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/api/handler"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/api/middleware"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/jwt"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// 写接口限流
	limited := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		// 认证
		v1.POST("/auth/logout", h.Auth.Logout)
		v1.GET("/auth/me", h.Auth.GetCurrentUser)

		// 项目与阶段
		projects := v1.Group("/projects")
		{
			projects.GET("/deactivated", h.Lifecycle.ListDeactivatedProjects)
			projects.GET("/:id", h.Lifecycle.GetProject)
			projects.GET("/:id/history", h.Lifecycle.ListProjectHistory)
			projects.POST("/:id/archive-requests", limited, h.Lifecycle.RequestArchive)

			projects.GET("/:id/phases", h.Phase.GetPhases)
			projects.GET("/:id/phases/current", h.Phase.CurrentPhase)
			projects.PUT("/:id/phases/:phase/content", limited, h.Phase.RecordPhaseContent)
			projects.PUT("/:id/phases/:phase/status", limited, h.Phase.SetPhaseStatus)
		}

		// 归档申请
		requests := v1.Group("/archive-requests")
		{
			requests.GET("", h.Lifecycle.ListArchivalRequests)
			requests.GET("/pending", h.Lifecycle.ListPendingArchivalRequests)
			requests.GET("/mine", h.Lifecycle.ListMyArchivalRequests)
			requests.GET("/:id", h.Lifecycle.GetArchivalRequest)
			requests.POST("/:id/approve", limited, h.Lifecycle.ApproveArchive)
			requests.POST("/:id/deny", limited, h.Lifecycle.DenyArchive)
		}

		// 管理员操作（角色在 Service 层校验）
		admin := v1.Group("/admin")
		{
			admin.POST("/projects/:id/deactivate", limited, h.Lifecycle.AdminDeactivate)
			admin.POST("/projects/:id/delete", limited, h.Lifecycle.AdminDelete)
			admin.GET("/export/archival-ledger", h.Export.ExportArchivalLedger)
		}

		// 站内通知
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListMine)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}

	return r
}
