package routes

import (
	"admission-management-api/controllers"
	"admission-management-api/middleware"
	"admission-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Candidate-facing application form
			public.POST("/admissions", controllers.SubmitAdmission)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Admission Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Admissions
			admissions := protected.Group("/admissions")
			{
				// Role-scoped listings (teachers see their own course)
				admissions.GET("", controllers.GetAdmissions)
				admissions.GET("/teacher-accepted", controllers.GetTeacherAccepted)
				admissions.GET("/teacher-rejected", controllers.GetTeacherRejected)
				admissions.GET("/interview-required", controllers.GetInterviewRequired)

				// Head-only listings
				head := admissions.Group("", middleware.RequireRole(models.RoleHead))
				{
					head.GET("/submitted", controllers.GetSubmitted)
					head.GET("/head-accepted", controllers.GetHeadAccepted)
					head.GET("/head-rejected", controllers.GetHeadRejected)
					head.GET("/final-selected", controllers.GetFinalSelected)
					head.GET("/final-rejected", controllers.GetFinalRejected)

					// Head review decisions
					head.PUT("/:id/approve", controllers.HeadApprove)
					head.PUT("/:id/reject", controllers.HeadReject)
					head.DELETE("/:id", controllers.HeadDelete)
				}

				// Teacher review decisions
				teacher := admissions.Group("", middleware.RequireRole(models.RoleTeacher))
				{
					teacher.GET("/head-forwarded", controllers.GetTeacherHeadAccepted)
					teacher.POST("/:id/schedule-interview", controllers.ScheduleInterview)
					teacher.PUT("/:id/final-approve", controllers.FinalApprove)
					teacher.PUT("/:id/final-reject", controllers.FinalReject)
				}
			}

			// Audit trail
			protected.GET("/audit-logs", controllers.GetAuditLogs)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
				notifications.POST("/push-token", controllers.RegisterPushToken)
			}
		}
	}
}
