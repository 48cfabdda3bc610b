package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rasterform/rasterd/api"
	"github.com/rasterform/rasterd/convert/domain"
)

// HandlePanics normalizes anything that escapes a handler to a plain
// InternalError response. The panic detail goes to the log, never to the
// client.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Handler panicked")
		} else {
			log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Handler panicked")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:   http.StatusText(http.StatusInternalServerError),
			Message: "an unexpected error occurred",
			Code:    string(domain.ErrInternalError),
		})
	}
}
