package application

import (
	"github.com/rasterform/rasterd/convert/domain"
)

const (
	// DefaultQuality is applied when a request omits the quality field.
	DefaultQuality = 90

	// MinQuality and MaxQuality bound the encoder quality scale.
	MinQuality = 1
	MaxQuality = 100
)

// ConversionOptions carries the parsed, per-request conversion parameters.
// An instance is constructed from request input, consumed once by a
// converter, and discarded.
type ConversionOptions struct {
	OutputFormat domain.Format
	// Quality is nil when the request did not supply one. Converters fall
	// back to DefaultQuality for lossy destinations.
	Quality *int
	// Width and Height are resize targets; zero means "not requested".
	Width  int
	Height int
	// MaintainAspect preserves the source aspect ratio when both targets
	// are given. Defaults to true at the parsing boundary.
	MaintainAspect bool
}

// EffectiveQuality resolves the quality to hand to an encoder, clamped into
// the valid range.
func (o ConversionOptions) EffectiveQuality() int {
	if o.Quality == nil {
		return DefaultQuality
	}
	return ClampQuality(*o.Quality)
}

// ClampQuality forces q into [MinQuality, MaxQuality]. Idempotent.
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// Limits bounds what the validator accepts. The zero value is not useful;
// construct with DefaultLimits and override from configuration.
type Limits struct {
	// MaxFileSize is the largest accepted input in bytes.
	MaxFileSize int64
	// MaxDimension caps requested resize targets per axis.
	MaxDimension int
}

const (
	defaultMaxFileSize  = 10 << 20 // 10 MiB
	defaultMaxDimension = 4096
)

// DefaultLimits returns the stock limits: 10 MiB input, 4096px targets.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:  defaultMaxFileSize,
		MaxDimension: defaultMaxDimension,
	}
}
