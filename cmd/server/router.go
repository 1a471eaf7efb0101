package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/health"
	"github.com/spycat-agency/service-mission/internal/common/middleware"
	"github.com/spycat-agency/service-mission/internal/handler"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter wires middleware and every route onto a fresh gin engine.
func NewRouter(
	db *gorm.DB,
	catService *application.CatService,
	missionService *application.MissionService,
	noteService *application.NoteService,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	health.NewHandler(db, serviceName, log).RegisterRoutes(router)

	// Register routes
	handler.RegisterRootRoute(&router.RouterGroup)
	handler.NewCatHandler(catService).RegisterRoutes(&router.RouterGroup)
	handler.NewMissionHandler(missionService).RegisterRoutes(&router.RouterGroup)
	handler.NewNoteHandler(noteService).RegisterRoutes(&router.RouterGroup)

	return router
}
