package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the local API. CORS is only enabled when origins are configured.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(), loopbackOnly())
	if len(allowedOrigins) > 0 {
		r.Use(corsFor(allowedOrigins))
	}

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/methods", h.Methods)
		api.GET("/templates", h.Templates)

		api.POST("/typeddata/validate", h.Validate)
		api.POST("/typeddata/format", h.Format)

		api.POST("/sign", h.Sign)
		api.GET("/logs", h.Logs)

		api.GET("/wallet", h.Wallet)
		api.POST("/wallet/connect", h.Connect)
		api.POST("/wallet/disconnect", h.Disconnect)
	}

	r.NoRoute(func(c *gin.Context) {
		writeRPCError(c, http.StatusNotFound, JSONRPCErrorCodeMethodNotFound, HTTPErrorNotFoundText, c.Request.URL.Path)
	})

	return r
}
