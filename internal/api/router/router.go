package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-voice/backend/config"
	"campus-voice/backend/internal/api/handler"
	"campus-voice/backend/internal/api/middleware"
	"campus-voice/backend/internal/model"
	"campus-voice/backend/pkg/jwt"
	"campus-voice/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

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

			// 投诉模块
			complaints := authorized.Group("/complaints")
			{
				complaints.GET("", h.Complaint.List)
				complaints.GET("/stats", h.Complaint.Stats)
				complaints.POST("", middleware.RoleAuth(model.RoleStudent), h.Complaint.Create)
				complaints.PUT("/:id/status",
					middleware.RoleAuth(model.RoleHod, model.RoleCoordinator, model.RoleAdmin),
					h.Complaint.UpdateStatus)
				complaints.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Complaint.Delete)
			}

			// 协调员管理模块（仅系主任）
			teamManage := authorized.Group("/team-manage")
			teamManage.Use(middleware.RoleAuth(model.RoleHod))
			{
				teamManage.GET("", h.Team.ListCandidates)
				teamManage.PUT("", h.Team.AssignCoordinator)
			}

			// 用户模块（仅管理员）
			users := authorized.Group("/users")
			users.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}

			// 院系模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", middleware.RoleAuth(model.RoleAdmin), h.Department.CreateDepartment)
				departments.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Department.UpdateDepartment)
				departments.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Department.DeleteDepartment)
			}

			// 角色模块
			roles := authorized.Group("/roles")
			{
				roles.GET("", h.Role.ListRoles)
				roles.POST("", middleware.RoleAuth(model.RoleAdmin), h.Role.CreateRole)
				roles.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Role.DeleteRole)
			}

			// 导出模块（管理员 / 系主任 / 协调员）
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleHod, model.RoleCoordinator))
			{
				export.GET("/complaints", h.Export.ExportComplaints)
			}
		}
	}

	return r
}
