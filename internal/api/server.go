package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hidori-app/hidori-api/docs"
	v1 "github.com/hidori-app/hidori-api/internal/api/handler/v1"
	"github.com/hidori-app/hidori-api/internal/api/middleware"
	"github.com/hidori-app/hidori-api/internal/config"
	"github.com/hidori-app/hidori-api/internal/pkg/ratelimit"
	"github.com/hidori-app/hidori-api/internal/repository"
	"github.com/hidori-app/hidori-api/internal/repository/dao"
	"github.com/hidori-app/hidori-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	eventHandler, participantHandler, summaryHandler := s.initHandlers(db)
	s.MountHandlers(eventHandler, participantHandler, summaryHandler)

	return s
}

func (s *Server) initHandlers(db *gorm.DB) (*v1.EventHandler, *v1.ParticipantHandler, *v1.SummaryHandler) {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))

	signingKey := []byte(s.Config.API.JWTSigningKey)
	creds := service.NewCredentialService(eventRepo)
	gate := service.NewAccessGate(creds, signingKey, s.Config.API.AdminToken)

	eventSvc := service.NewEventService(eventRepo, participantRepo, creds, signingKey)
	participantSvc := service.NewParticipantService(participantRepo)
	summarySvc := service.NewSummaryService(eventRepo, participantRepo)

	eventHandler := v1.NewEventHandler(eventSvc, participantSvc, gate)
	participantHandler := v1.NewParticipantHandler(participantSvc, eventSvc, gate)
	summaryHandler := v1.NewSummaryHandler(summarySvc)

	return eventHandler, participantHandler, summaryHandler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(eventHandler *v1.EventHandler, participantHandler *v1.ParticipantHandler, summaryHandler *v1.SummaryHandler) {
	const basePath = "/api/v1"

	rl := s.Config.RateLimit
	readLimiter := ratelimit.NewLimiter(rl.ReadLimit, time.Duration(rl.ReadWindowSeconds)*time.Second)
	mutationLimiter := ratelimit.NewLimiter(rl.MutationLimit, time.Duration(rl.MutationWindowSeconds)*time.Second)

	reads := s.Router.Group(basePath, middleware.RateLimit(readLimiter))
	{
		reads.GET("/events/:eventID", eventHandler.HandleGetEvent)
		reads.GET("/events/:eventID/summary", summaryHandler.HandleGetSummary)
	}

	mutations := s.Router.Group(basePath, middleware.RateLimit(mutationLimiter))
	{
		mutations.POST("/events", eventHandler.HandleCreateEvent)
		mutations.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		mutations.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		mutations.POST("/events/:eventID/token", eventHandler.HandleIssueToken)
		mutations.POST("/events/:eventID/participants", participantHandler.HandleCreateParticipant)
		mutations.PUT("/events/:eventID/participants/:participantID", participantHandler.HandleUpdateParticipant)
		mutations.DELETE("/events/:eventID/participants/:participantID", participantHandler.HandleDeleteParticipant)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "hidori API"
	docs.SwaggerInfo.Description = "Schedule-coordination API: events, responses and availability summaries."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
