package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/shared/response"
)

// Recovery catches panics and returns a clean 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(RequestIDKey)).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Success: false,
					Error: &response.ErrorInfo{
						Code:    "INTERNAL_ERROR",
						Message: "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
