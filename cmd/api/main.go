package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"admission-management-api/config"
	"admission-management-api/controllers"
	"admission-management-api/middleware"
	"admission-management-api/routes"
	"admission-management-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Teacher directory for routing head-approved candidates
	directory, err := services.LoadTeacherDirectory()
	if err != nil {
		log.Fatalf("Invalid COURSE_TEACHERS configuration: %v", err)
	}

	// SMS is optional; without AWS_REGION the notifier is email-only
	var sms services.SMSSender
	if os.Getenv("AWS_REGION") != "" {
		snsClient, err := config.NewSNSClient(context.Background())
		if err != nil {
			log.Printf("Warning: SNS client unavailable, SMS disabled: %v", err)
		} else {
			sms = snsClient
		}
	}

	// Push is always wired; the Expo API needs no credentials and the
	// notifier skips the channel when nobody registered a token.
	push := config.NewExpoPushClient(nil)

	notifier := services.NewNotifier(services.MailerFunc(config.SendMail), sms, push)
	controllers.Init(
		services.NewAdmissionService(config.DB, directory, notifier),
		services.NewSubmissionService(config.DB, notifier, os.Getenv("HEAD_EMAIL")),
	)

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Create upload directory if not exists
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create upload directory: %v", err)
	}
	router.Static("/uploads", uploadPath)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
