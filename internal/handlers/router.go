package handlers

import (
	"github.com/franzego/slackrelay/internal/logging"
	"github.com/franzego/slackrelay/internal/middleware"
	"github.com/franzego/slackrelay/internal/ui"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the relay's HTTP surface onto a fresh gin engine.
func NewRouter(messages *MessageHandler, health *HealthHandler, logger *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/", gin.WrapH(ui.Handler()))
	r.GET("/health", health.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/test", Ping)
		api.POST("/messages/send", messages.SendMessage)
		api.GET("/messages/:channel/:ts", messages.GetMessage)
		api.PUT("/messages/update", messages.UpdateMessage)
		api.DELETE("/messages/delete", messages.DeleteMessage)
		api.PUT("/messages/reschedule", messages.RescheduleMessage)
		api.GET("/messages/scheduled/:channelId", messages.ListScheduled)
	}

	return r
}
