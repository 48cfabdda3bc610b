package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rasterform/rasterd/api"
	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
)

// FormatsHandler serves the capability table so clients can decide, before
// uploading anything, which pairs are possible and where they run.
type FormatsHandler struct {
	limits         application.Limits
	defaultQuality int
}

func NewFormatsHandler(limits application.Limits, defaultQuality int) *FormatsHandler {
	return &FormatsHandler{limits: limits, defaultQuality: defaultQuality}
}

// GetFormats handles GET /api/v1/formats.
func (h *FormatsHandler) GetFormats(c *gin.Context) {
	resp := api.FormatsResponse{
		ClientSources: formatTags(domain.SourcesForMethod(domain.MethodClient)),
		ServerSources: formatTags(domain.SourcesForMethod(domain.MethodServer)),
		Limits: api.LimitsInfo{
			MaxFileSize:    h.limits.MaxFileSize,
			MaxDimension:   h.limits.MaxDimension,
			MinQuality:     application.MinQuality,
			MaxQuality:     application.MaxQuality,
			DefaultQuality: h.defaultQuality,
		},
	}

	for _, f := range domain.Formats {
		resp.Formats = append(resp.Formats, api.FormatInfo{
			Format:         string(f),
			MimeType:       f.MIMEType(),
			QualityApplies: f.QualityApplies(),
			SupportsAlpha:  f.SupportsAlpha(),
		})
	}

	for _, entry := range domain.Capabilities() {
		resp.Conversions = append(resp.Conversions, api.ConversionRule{
			From:   string(entry.Source),
			To:     formatTags(entry.Destinations),
			Method: string(entry.Method),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func formatTags(formats []domain.Format) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		out = append(out, string(f))
	}
	return out
}
