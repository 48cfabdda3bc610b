package domain

import "strings"

// Format identifies a supported raster image encoding by its short tag.
// "jpeg" is a display alias of "jpg" and is normalized away at every boundary.
type Format string

const (
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatGIF  Format = "gif"
	FormatAVIF Format = "avif"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// Formats lists every supported format in canonical (normalized) form.
var Formats = []Format{
	FormatJPG,
	FormatPNG,
	FormatWebP,
	FormatGIF,
	FormatAVIF,
	FormatTIFF,
	FormatBMP,
}

// lossyFormats are the destinations for which a quality parameter is meaningful.
var lossyFormats = map[Format]bool{
	FormatJPG:  true,
	FormatWebP: true,
	FormatAVIF: true,
}

// alphaFormats are the destinations capable of carrying an alpha channel.
var alphaFormats = map[Format]bool{
	FormatPNG:  true,
	FormatWebP: true,
	FormatGIF:  true,
	FormatAVIF: true,
	FormatTIFF: true,
}

var mimeByFormat = map[Format]string{
	FormatJPG:  "image/jpeg",
	FormatPNG:  "image/png",
	FormatWebP: "image/webp",
	FormatGIF:  "image/gif",
	FormatAVIF: "image/avif",
	FormatTIFF: "image/tiff",
	FormatBMP:  "image/bmp",
}

// NormalizeFormat folds case and collapses the jpeg alias onto jpg.
// It is idempotent: NormalizeFormat(NormalizeFormat(f)) == NormalizeFormat(f).
func NormalizeFormat(f Format) Format {
	n := Format(strings.ToLower(strings.TrimSpace(string(f))))
	if n == FormatJPEG {
		return FormatJPG
	}
	return n
}

// ParseFormat parses a user-supplied format tag.
// The second return value reports whether the tag names a supported format.
func ParseFormat(s string) (Format, bool) {
	f := NormalizeFormat(Format(s))
	_, ok := mimeByFormat[f]
	return f, ok
}

// MIMEType returns the MIME type for a format, or an empty string for an
// unknown format.
func (f Format) MIMEType() string {
	return mimeByFormat[NormalizeFormat(f)]
}

// Extension returns the canonical file extension without the leading dot.
func (f Format) Extension() string {
	return string(NormalizeFormat(f))
}

// QualityApplies reports whether a quality parameter is meaningful when
// encoding to this format.
func (f Format) QualityApplies() bool {
	return lossyFormats[NormalizeFormat(f)]
}

// SupportsAlpha reports whether the format can carry an alpha channel.
func (f Format) SupportsAlpha() bool {
	return alphaFormats[NormalizeFormat(f)]
}

// FormatFromMIME maps a declared MIME type to its format.
// The second return value is false for MIME types outside the allowed set.
func FormatFromMIME(mime string) (Format, bool) {
	m := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	if m == "image/jpg" {
		m = "image/jpeg"
	}
	for f, fm := range mimeByFormat {
		if fm == m {
			return f, true
		}
	}
	return "", false
}
