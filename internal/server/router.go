package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/calmasana/calmasana-backend/internal/handlers"
)

type RouterConfig struct {
	QuestionnaireHandler *handlers.QuestionnaireHandler
	PoseHandler          *handlers.PoseHandler
	PracticeHandler      *handlers.PracticeHandler
	ReportHandler        *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Questionnaire
		api.POST("/questionnaire", cfg.QuestionnaireHandler.Submit)
		// Poses
		api.GET("/poses", cfg.PoseHandler.List)
		api.GET("/poses/:name", cfg.PoseHandler.Get)
		// Practice
		api.POST("/practice/sessions", cfg.PracticeHandler.Start)
		api.POST("/practice/sessions/:id/frames", cfg.PracticeHandler.Frame)
		api.POST("/practice/sessions/:id/voice", cfg.PracticeHandler.Voice)
		api.POST("/practice/sessions/:id/complete", cfg.PracticeHandler.Complete)
		// Report
		api.GET("/report", cfg.ReportHandler.Get)
	}

	return router
}
