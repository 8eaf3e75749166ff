package router

import (
	"time"

	"github.com/clockwise-dev/clockwise/internal/handlers"
	"github.com/clockwise-dev/clockwise/internal/middleware"
	"github.com/clockwise-dev/clockwise/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:user_id", handlers.GetUser)
			users.PATCH("/:user_id", handlers.UpdateUser)
			users.DELETE("/:user_id", handlers.DeactivateUser)
			users.GET("/:user_id/projects", handlers.GetUserProjects)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Assignment endpoints
			projects.POST("/:project_id/assign", handlers.AssignUsers)
			projects.POST("/:project_id/unassign", handlers.UnassignUsers)
			projects.GET("/:project_id/assignments", handlers.GetProjectAssignments)
			projects.GET("/:project_id/time-report", handlers.GetProjectTimeReport)
		}

		api.GET("/assignments/stats", middleware.AuthMiddleware(), handlers.GetAssignmentStats)

		hours := api.Group("/hours", middleware.AuthMiddleware())
		{
			hours.GET("", handlers.ListHours)
			hours.POST("", handlers.LogHours)
			hours.PUT("/:entry_id", handlers.UpdateHours)
			hours.DELETE("/:entry_id", handlers.DeleteHours)
		}

		timeReports := api.Group("/time", middleware.AuthMiddleware())
		{
			timeReports.GET("/daily", handlers.GetDailySummary)
			timeReports.GET("/weekly", handlers.GetWeeklySummary)
			timeReports.GET("/monthly", handlers.GetMonthlySummary)
		}

		api.GET("/dashboard/stats", middleware.AuthMiddleware(), handlers.GetDashboardStats)
	}

	return r
}
