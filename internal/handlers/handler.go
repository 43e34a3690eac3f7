package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/service"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
}

type Option func(*Handler)

// WithStreamInterval sets the default websocket push interval.
func WithStreamInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.streamInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{services: services, log: log, streamInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// full plant state stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIDMiddleware)
	{
		h.registerReactorRoutes(api)
		h.registerFleetRoutes(api)
		h.registerSupplyRoutes(api)
		h.registerAlarmRoutes(api)
		h.registerSecurityRoutes(api)
		h.registerLogRoutes(api)
		h.registerMediaRoutes(api)
		api.GET("/presets", h.listPresets)
	}
}

func (h *Handler) registerReactorRoutes(api *gin.RouterGroup) {
	reactor := api.Group("/reactor")
	{
		reactor.GET("/state", h.getState)
		reactor.POST("/start", h.startReactor)
		reactor.POST("/stop", h.stopReactor)
		reactor.POST("/estop", h.emergencyStop)
		// Body example: {"target_temp_c":520,"mode":"BIO_OIL"}
		reactor.PUT("/setpoints", h.updateSetpoints)
		reactor.POST("/preset", h.applyPreset)
		reactor.PUT("/faults/:name", h.setFault)
		reactor.POST("/diagnostics", h.runDiagnostics)
		reactor.GET("/diagnostics", h.getDiagnostics)
	}
}

func (h *Handler) registerFleetRoutes(api *gin.RouterGroup) {
	fleet := api.Group("/fleet")
	{
		fleet.GET("", h.getFleet)
		fleet.POST("/preset", h.applyFleetPreset)
		fleet.POST("/start-all", h.startIdleUnits)
		fleet.POST("/stop-all", h.stopRunningUnits)
		fleet.POST("/units/:id/start", h.startUnit)
		fleet.POST("/units/:id/stop", h.stopUnit)
	}
}

func (h *Handler) registerSupplyRoutes(api *gin.RouterGroup) {
	supply := api.Group("/supply")
	{
		supply.GET("", h.getSupply)
		supply.PUT("/:id/running", h.setPlantRunning)
		supply.PUT("/:id/impurity", h.setPlantImpurity)
		supply.POST("/:id/restock", h.restockPlant)
	}
}

func (h *Handler) registerAlarmRoutes(api *gin.RouterGroup) {
	alarms := api.Group("/alarms")
	{
		alarms.GET("", h.getAlarms)
		alarms.GET("/config", h.getAlarmConfigs)
		alarms.PUT("/config/:signal", h.setAlarmConfig)
	}
}

func (h *Handler) registerSecurityRoutes(api *gin.RouterGroup) {
	security := api.Group("/security")
	{
		security.GET("", h.getSecurity)
		security.POST("/reset", h.resetSecurityLevel)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	api.GET("/history", h.getHistory)
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
		logs.GET("/recent", h.getRecentLogs)
	}
}

func (h *Handler) registerMediaRoutes(api *gin.RouterGroup) {
	media := api.Group("/media")
	{
		media.GET("/status", h.mediaStatus)
		media.POST("/image", h.generateImage)
		media.POST("/video", h.generateVideo)
	}
}
