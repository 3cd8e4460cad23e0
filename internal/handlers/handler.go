package handlers

import (
	"context"
	"io"

	"fleetfuel/internal/logger"
	"fleetfuel/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// WebhookGateway consumes a raw chat update delivered over HTTP.
type WebhookGateway interface {
	Handle(ctx context.Context, body io.Reader) error
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	webhook      WebhookGateway
	webhookToken string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// EnableWebhook mounts POST /webhook/<token> on the router built by
// InitRoutes. The token in the path is the shared secret: requests with any
// other value are rejected.
func (h *Handler) EnableWebhook(gateway WebhookGateway, token string) {
	h.webhook = gateway
	h.webhookToken = token
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Chat update delivery (only when webhook mode is configured)
	if h.webhook != nil {
		router.POST("/webhook/:token", h.telegramWebhook)
	}

	// Versioned read-only API
	h.registerAPIRoutes(router)

	// Minimal WebSocket connection (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerFleetRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerFleetRoutes(api *gin.RouterGroup) {
	fleet := api.Group("/fleet")
	{
		fleet.GET("", h.getFleet)
		fleet.GET("/shortage", h.getShortage)
		fleet.GET("/:id", h.getObject)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
