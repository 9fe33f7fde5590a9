package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request in key=value form and recovers from
// panics with a JSON 500. Error details never reach the response body.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf(
					"panic method=%s path=%s error=%q stack=%s",
					c.Request.Method,
					c.Request.URL.Path,
					fmt.Sprintf("%v", recovered),
					debug.Stack(),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				return
			}

			log.Printf(
				"request method=%s path=%s status=%d client_ip=%s user_id=%s latency=%s",
				c.Request.Method,
				c.Request.URL.Path,
				c.Writer.Status(),
				c.ClientIP(),
				c.GetString("user_id"),
				time.Since(start),
			)
		}()

		c.Next()
	}
}
