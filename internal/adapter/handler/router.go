package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/pkg/config"
	"github.com/johnquangdev/meeting-archive/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	service        archive.Service
	archiveHandler *Archive
	webhookHandler *ArchiveWebhook
	jwtManager     *jwt.Manager
	logger         *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, service archive.Service, jwtManager *jwt.Manager, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Router{
		cfg:            cfg,
		service:        service,
		archiveHandler: NewArchiveHandler(service, logger),
		jwtManager:     jwtManager,
		logger:         logger,
	}
	if cfg != nil && cfg.Archive.WebhookSecret != "" {
		rt.webhookHandler = NewArchiveWebhook(service, cfg.Archive.WebhookSecret, logger)
	}
	return rt
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupArchiveRoutes(v1)
	rt.setupBrowseRoutes(v1)
}

// setupArchiveRoutes configures snapshot routes
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	archiveGroup := g.Group("/archive")

	archiveGroup.GET("", rt.archiveHandler.Summary)
	archiveGroup.GET("/diagnostics", rt.archiveHandler.Diagnostics)
	archiveGroup.POST("/reload", rt.archiveHandler.Reload, middleware.EchoAuth(rt.jwtManager, jwt.RoleAdmin))

	// Only reachable when ARCHIVE_WEBHOOK_SECRET is set
	if rt.webhookHandler != nil {
		archiveGroup.POST("/webhook", rt.webhookHandler.HandleArchiveUpdated)
	}
}

// setupBrowseRoutes configures entity and graph routes
func (rt *Router) setupBrowseRoutes(g *echo.Group) {
	h := rt.archiveHandler

	g.GET("/meetings", h.ListMeetings)
	g.GET("/meetings/:id", h.GetMeeting)
	g.GET("/decisions", h.ListDecisions)
	g.GET("/action-items", h.ListActionItems)
	g.GET("/people", h.ListPeople)
	g.GET("/people/:name", h.GetPerson)
	g.GET("/topics", h.ListTopics)
	g.GET("/topics/:name", h.GetTopic)
	g.GET("/workgroups", h.ListWorkgroups)
	g.GET("/workgroups/:id/meetings", h.WorkgroupMeetings)
	g.GET("/graphs/:kind", h.GetGraph)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, presenter.ToHealthResponse(env, rt.service.Status()))
}
