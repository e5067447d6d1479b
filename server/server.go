package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shubhankarvyas/medipulse-ai-insight/cache"
	"github.com/shubhankarvyas/medipulse-ai-insight/db"
	"github.com/shubhankarvyas/medipulse-ai-insight/handlers"
	httpHandler "github.com/shubhankarvyas/medipulse-ai-insight/handlers/http"
	"github.com/shubhankarvyas/medipulse-ai-insight/repositories"
	"github.com/shubhankarvyas/medipulse-ai-insight/usecases"
	"github.com/shubhankarvyas/medipulse-ai-insight/ws"
	"go.uber.org/zap"
)

type Server struct {
	app  *gin.Engine
	db   db.Database
	log  *zap.Logger
	addr string
}

func NewServer(database db.Database, log *zap.Logger, addr string) *Server {
	return &Server{
		app:  gin.Default(),
		db:   database,
		log:  log,
		addr: addr,
	}
}

func (s *Server) Start() error {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // the web dashboard runs on a separate origin
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	s.app.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "MediPulse backend is running"})
	})
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	s.app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	profileRepo := repositories.NewProfilePgRepository(s.db)
	patientRepo := repositories.NewPatientPgRepository(s.db)
	deviceRepo := repositories.NewDevicePgRepository(s.db)
	readingRepo := repositories.NewReadingPgRepository(s.db)

	// Initialize shared state
	latest := cache.NewLatestReadings()
	manager := ws.NewManager()

	// Initialize use cases
	registry := usecases.NewRegistryUseCase(profileRepo, patientRepo, deviceRepo, s.log)
	ingestion := usecases.NewIngestionUseCase(registry, readingRepo, deviceRepo, latest, manager, s.log)
	readings := usecases.NewReadingsUseCase(readingRepo)

	// Initialize handlers
	setupHandler := httpHandler.NewSetupHandler(registry)
	ecgHandler := httpHandler.NewECGHandler(ingestion, readings, latest)
	wsHandler := handlers.NewWSHandler(manager, s.log)

	s.app.POST("/setup-ecg-device", setupHandler.SetupDevice)
	s.app.POST("/submit-ecg", ecgHandler.SubmitECG)
	s.app.GET("/ecg-data/:patient_id", ecgHandler.GetECGData)
	s.app.GET("/ecg-data/:patient_id/latest", ecgHandler.GetLatestECGData)
	s.app.GET("/ws", wsHandler.HandleReadingStream)

	s.log.Info("http server listening", zap.String("addr", s.addr))
	return s.app.Run(s.addr)
}
