package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"PetitionRouter/internal/usecase"
)

// Server exposes the petition workflows over HTTP.
type Server struct {
	service *usecase.Service
	logger  *slog.Logger
}

// NewServer wires the use-case service into a server instance.
func NewServer(service *usecase.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{service: service, logger: logger}
}

// Router builds the gin engine with CORS and all routes registered.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "petition-router"})
	})

	api := router.Group("/api")
	{
		api.POST("/petitions", s.submitPetition)
		api.GET("/petitions", s.listPetitions)
		api.GET("/petitions/:id", s.getPetition)
		api.PATCH("/petitions/:id/status", s.updateStatus)
		api.POST("/analyze", s.analyzePreview)
		api.GET("/departments", s.listDepartments)
		api.GET("/notifications", s.listNotifications)
		api.POST("/notifications/:id/read", s.markNotificationRead)
		api.POST("/notifications/read-all", s.markAllNotificationsRead)
	}

	return router
}
