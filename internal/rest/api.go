package rest

import "github.com/gin-gonic/gin"

func NewApi(router *gin.Engine, convert *ConvertHandler, formats *FormatsHandler, health *HealthHandler) {
	convertV1 := router.Group("api/v1")
	{
		convertV1.POST("/convert", convert.Convert)
		convertV1.POST("/convert/batch", convert.ConvertBatch)
		convertV1.GET("/formats", formats.GetFormats)
	}

	router.GET("/health", health.GetHealth)
}
