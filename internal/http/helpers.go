package http

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

func isLoopbackRequest(r *http.Request) bool {
	ra := r.RemoteAddr

	h, _, err := net.SplitHostPort(ra)
	if err != nil {
		ip := net.ParseIP(ra)
		return ip != nil && ip.IsLoopback()
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}

func writeRPCError(c *gin.Context, status int, code int, msg string, data any) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": rpcErr{Code: code, Message: msg, Data: data},
	})
}
