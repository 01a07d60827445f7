package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/typed-data-signer/cmd/typed-data-signer/config"
)

// loopbackOnly rejects anything not coming from, and addressed to, this machine.
func loopbackOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoopbackRequest(c.Request) {
			writeRPCError(c, http.StatusForbidden, JSONRPCErrorCodeInvalidRequest, HTTPErrorForbiddenText, nil)
			return
		}
		if !config.IsSafeLocalHost(c.Request.Host) {
			writeRPCError(c, http.StatusForbidden, JSONRPCErrorCodeInvalidRequest, HTTPErrorForbiddenHostText, nil)
			return
		}
		c.Next()
	}
}

// requestID echoes the caller's X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

func corsFor(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        corsMaxAge,
	})
}
