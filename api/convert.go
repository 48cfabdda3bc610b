package api

// Response headers set on a successful conversion.
const (
	HeaderOriginalSize     = "X-Original-Size"
	HeaderConvertedSize    = "X-Converted-Size"
	HeaderCompressionRatio = "X-Compression-Ratio"
)

// BatchItemResult is the outcome for one file of a batch conversion.
// Exactly one of Data or Error is set.
type BatchItemResult struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	// Data holds the converted bytes, base64-encoded.
	Data     string         `json:"data,omitempty"`
	MimeType string         `json:"mimeType,omitempty"`
	Width    int            `json:"width,omitempty"`
	Height   int            `json:"height,omitempty"`
	Size     int64          `json:"size,omitempty"`
	HasAlpha bool           `json:"hasAlpha,omitempty"`
	Error    *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse aggregates per-file results of a batch conversion. Files are
// processed strictly in order; there is no aggregation beyond these counts.
type BatchResponse struct {
	Results   []BatchItemResult `json:"results"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
