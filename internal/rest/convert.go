package rest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rasterform/rasterd/api"
	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
	"github.com/rasterform/rasterd/convert/engine"
)

// ConvertHandler serves the conversion endpoints: parse, validate, delegate
// to a converter, shape the response. It holds no per-request state.
type ConvertHandler struct {
	validator      *application.Validator
	registry       *engine.Registry
	limits         application.Limits
	defaultQuality int
}

func NewConvertHandler(validator *application.Validator, registry *engine.Registry, limits application.Limits, defaultQuality int) *ConvertHandler {
	return &ConvertHandler{
		validator:      validator,
		registry:       registry,
		limits:         limits,
		defaultQuality: defaultQuality,
	}
}

// Convert handles POST /api/v1/convert.
func (h *ConvertHandler) Convert(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, domain.ErrMissingParameter, "the file field is required", nil)
		return
	}

	params, verdict := h.parseParams(c)
	if !verdict.Valid {
		respondVerdict(c, verdict)
		return
	}

	res, name, origSize, verdict := h.convertOne(c, fh, params)
	if !verdict.Valid {
		respondVerdict(c, verdict)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header(api.HeaderOriginalSize, strconv.FormatInt(origSize, 10))
	c.Header(api.HeaderConvertedSize, strconv.FormatInt(res.Size, 10))
	c.Header(api.HeaderCompressionRatio, fmt.Sprintf("%.2f", float64(origSize)/float64(res.Size)))
	c.Data(http.StatusOK, res.Format.MIMEType(), res.Data)
}

// ConvertBatch handles POST /api/v1/convert/batch. Files are processed in
// order, one at a time; a failing file does not stop the rest.
func (h *ConvertHandler) ConvertBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, domain.ErrMissingParameter, "a multipart body is required", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, domain.ErrMissingParameter, "at least one file is required in the files field", nil)
		return
	}

	params, verdict := h.parseParams(c)
	if !verdict.Valid {
		respondVerdict(c, verdict)
		return
	}

	resp := api.BatchResponse{Total: len(files)}
	for _, fh := range files {
		item := api.BatchItemResult{Filename: application.SanitizeFilename(fh.Filename)}

		res, name, _, verdict := h.convertOne(c, fh, params)
		if verdict.Valid {
			item.Success = true
			item.Filename = name
			item.Data = base64.StdEncoding.EncodeToString(res.Data)
			item.MimeType = res.Format.MIMEType()
			item.Width = res.Width
			item.Height = res.Height
			item.Size = res.Size
			item.HasAlpha = res.HasAlpha
			resp.Succeeded++
		} else {
			item.Error = errorBody(verdict)
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}

	c.JSON(http.StatusOK, resp)
}

// convertParams is the shared option set parsed once per request.
type convertParams struct {
	outputFormat   string
	quality        *int
	width          int
	height         int
	maintainAspect bool
}

func (h *ConvertHandler) parseParams(c *gin.Context) (convertParams, domain.ValidationVerdict) {
	p := convertParams{
		outputFormat:   c.PostForm("outputFormat"),
		maintainAspect: true,
	}

	if raw := c.PostForm("quality"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return p, domain.Fail(domain.ErrInvalidQuality, "quality must be an integer", map[string]any{
				"received": raw,
			})
		}
		p.quality = &q
	}

	for _, axis := range []struct {
		name string
		out  *int
	}{
		{name: "width", out: &p.width},
		{name: "height", out: &p.height},
	} {
		raw := c.PostForm(axis.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, domain.Fail(domain.ErrInvalidDimensions, axis.name+" must be an integer", map[string]any{
				"received": raw,
				"axis":     axis.name,
			})
		}
		*axis.out = n
	}

	if raw := c.PostForm("maintainAspect"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return p, domain.Fail(domain.ErrInvalidDimensions, "maintainAspect must be a boolean", map[string]any{
				"received": raw,
			})
		}
		p.maintainAspect = b
	}

	return p, domain.Pass(nil)
}

// convertOne runs the full validate-then-convert pipeline for a single file.
// The returned verdict doubles as the error carrier for both stages.
func (h *ConvertHandler) convertOne(c *gin.Context, fh *multipart.FileHeader, params convertParams) (*engine.Result, string, int64, domain.ValidationVerdict) {
	data, verdict := h.readFile(fh)
	if !verdict.Valid {
		return nil, "", 0, verdict
	}

	verdict = h.validator.Validate(application.ValidationRequest{
		Filename:     fh.Filename,
		Size:         int64(len(data)),
		DeclaredMIME: fh.Header.Get("Content-Type"),
		Head:         head(data),
		OutputFormat: params.outputFormat,
		Quality:      params.quality,
		Width:        params.width,
		Height:       params.height,
	})
	if !verdict.Valid {
		return nil, "", 0, verdict
	}

	src := verdict.Details["sourceFormat"].(domain.Format)
	dst, _ := domain.ParseFormat(params.outputFormat)

	converter, err := h.registry.ForPair(src, dst)
	if err != nil {
		return nil, "", 0, conversionVerdict(fh.Filename, err)
	}

	quality := params.quality
	if quality == nil {
		quality = &h.defaultQuality
	}

	res, err := converter.Convert(c.Request.Context(), data, src, application.ConversionOptions{
		OutputFormat:   dst,
		Quality:        quality,
		Width:          params.width,
		Height:         params.height,
		MaintainAspect: params.maintainAspect,
	})
	if err != nil {
		return nil, "", 0, conversionVerdict(fh.Filename, err)
	}

	return res, application.SuggestedFilename(fh.Filename, dst), int64(len(data)), domain.Pass(nil)
}

// readFile loads the upload, bounded one byte past the size limit so the
// validator still owns the too-large rejection.
func (h *ConvertHandler) readFile(fh *multipart.FileHeader) ([]byte, domain.ValidationVerdict) {
	f, err := fh.Open()
	if err != nil {
		return nil, domain.Fail(domain.ErrCorruptedFile, "failed to open uploaded file", nil)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.limits.MaxFileSize+1))
	if err != nil {
		return nil, domain.Fail(domain.ErrCorruptedFile, "failed to read uploaded file", nil)
	}
	return data, domain.Pass(nil)
}

func head(data []byte) []byte {
	if len(data) > domain.SniffLen {
		return data[:domain.SniffLen]
	}
	return data
}

// conversionVerdict folds a processing-stage error into a verdict. The full
// error chain goes to the log; only the top-level message is surfaced.
func conversionVerdict(filename string, err error) domain.ValidationVerdict {
	var convErr *domain.ConversionError
	if errors.As(err, &convErr) {
		log.Error().Err(err).Str("filename", filename).Str("code", string(convErr.Code)).Msg("Conversion failed")
		return domain.Fail(convErr.Code, convErr.Message, nil)
	}
	log.Error().Err(err).Str("filename", filename).Msg("Conversion failed")
	return domain.Fail(domain.ErrConversionFailed, "conversion failed", nil)
}
