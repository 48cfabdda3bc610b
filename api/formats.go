package api

// ConversionRule is one capability entry of the conversion matrix.
type ConversionRule struct {
	From   string   `json:"from"`
	To     []string `json:"to"`
	Method string   `json:"method"`
}

// FormatInfo describes a single supported format.
type FormatInfo struct {
	Format         string `json:"format"`
	MimeType       string `json:"mimeType"`
	QualityApplies bool   `json:"qualityApplies"`
	SupportsAlpha  bool   `json:"supportsAlpha"`
}

// LimitsInfo exposes the request bounds so clients can validate early.
type LimitsInfo struct {
	MaxFileSize    int64 `json:"maxFileSize"`
	MaxDimension   int   `json:"maxDimension"`
	MinQuality     int   `json:"minQuality"`
	MaxQuality     int   `json:"maxQuality"`
	DefaultQuality int   `json:"defaultQuality"`
}

// FormatsResponse is the full capability table as served by GET formats.
type FormatsResponse struct {
	Formats       []FormatInfo     `json:"formats"`
	ClientSources []string         `json:"clientSources"`
	ServerSources []string         `json:"serverSources"`
	Conversions   []ConversionRule `json:"conversions"`
	Limits        LimitsInfo       `json:"limits"`
}
