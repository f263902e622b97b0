package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers sent on every response of the public endpoints.
var (
	PublicAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	PublicAllowHeaders = []string{"Content-Type", "Authorization"}
)

// PublicCORS sets permissive CORS headers on every response, whether or not
// the request carries an Origin, and answers preflight requests with 204.
func PublicCORS() gin.HandlerFunc {
	methods := strings.Join(PublicAllowMethods, ",")
	headers := strings.Join(PublicAllowHeaders, ", ")
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ClientCORS restricts cross-origin access to the configured client URL. It
// is used on the authenticated routes.
func ClientCORS(clientURL string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
