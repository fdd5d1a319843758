// Package httpx carries the gin middleware shared by every route: a
// request id for correlating gateway callbacks with local log lines, and a
// request log.
package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ridKey = "rid"

// RequestID propagates an incoming X-Request-ID or mints one. The id is
// echoed on the response so a staff terminal can quote it when reporting a
// failed checkout.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one line per request after the handler ran. Errors pushed
// onto the gin context (bind failures and the like) ride along.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		line := "[http] rid=" + c.GetString(ridKey)
		if errs := c.Errors.String(); errs != "" {
			line += " errs=" + errs
		}
		log.Printf("%s %s %s status=%d dur=%s",
			line, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
