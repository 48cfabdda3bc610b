package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rasterform/rasterd/api"
	"github.com/rasterform/rasterd/convert/domain"
)

func errorBody(verdict domain.ValidationVerdict) *api.ErrorResponse {
	status := verdict.Code.HTTPStatus()
	return &api.ErrorResponse{
		Error:   http.StatusText(status),
		Message: verdict.Message,
		Code:    string(verdict.Code),
		Details: verdict.Details,
	}
}

func respondVerdict(c *gin.Context, verdict domain.ValidationVerdict) {
	c.JSON(verdict.Code.HTTPStatus(), errorBody(verdict))
}

func respondError(c *gin.Context, code domain.ErrorCode, msg string, details map[string]any) {
	respondVerdict(c, domain.Fail(code, msg, details))
}
