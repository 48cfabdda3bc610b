// Package engine holds the two pixel-transformation paths: the minimal
// canvas converter backing client-tagged capability pairs and the native
// converter backing server-tagged pairs. Both are pure byte-in/byte-out
// transformations; routing between them is driven entirely by the
// capability table.
package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
)

// maxSourcePixels bounds the decoded pixel count (64MP) so a header lying
// about its dimensions cannot force a multi-gigabyte allocation.
const maxSourcePixels int64 = 64 * 1024 * 1024

// Result is the outcome of one conversion: the encoded bytes plus the
// metadata derived during the transformation.
type Result struct {
	Data     []byte
	Format   domain.Format
	Width    int
	Height   int
	HasAlpha bool
	Size     int64
}

// Converter turns validated input bytes into encoded output bytes.
// Implementations must be stateless and safe for concurrent use.
type Converter interface {
	// Method names the capability-table execution path this converter backs.
	Method() domain.ExecutionMethod
	// Convert decodes src (whose format was already sniffed as srcFormat),
	// applies the resize targets from opts, and encodes to opts.OutputFormat.
	Convert(ctx context.Context, src []byte, srcFormat domain.Format, opts application.ConversionOptions) (*Result, error)
}

// Registry resolves a converter for a capability-table method. It is
// populated once at startup and read-only afterwards.
type Registry struct {
	byMethod map[domain.ExecutionMethod]Converter
}

func NewRegistry(converters ...Converter) *Registry {
	m := make(map[domain.ExecutionMethod]Converter, len(converters))
	for _, c := range converters {
		m[c.Method()] = c
	}
	return &Registry{byMethod: m}
}

// ForMethod returns the converter backing a method.
func (r *Registry) ForMethod(m domain.ExecutionMethod) (Converter, bool) {
	c, ok := r.byMethod[m]
	return c, ok
}

// ForPair resolves the converter for a (source, destination) pair through
// the capability table.
func (r *Registry) ForPair(src, dst domain.Format) (Converter, error) {
	capability, ok := domain.LookupCapability(src, dst)
	if !ok {
		return nil, domain.NewConversionError(domain.ErrUnsupportedOperation,
			fmt.Sprintf("conversion %s to %s is not supported", src, dst), nil)
	}
	c, ok := r.ForMethod(capability.Method)
	if !ok {
		return nil, domain.NewConversionError(domain.ErrEngineError,
			fmt.Sprintf("no converter registered for method %q", capability.Method), nil)
	}
	return c, nil
}

// guardSourceBounds rejects decoded headers whose claimed dimensions exceed
// maxSourcePixels. It runs against DecodeConfig output, before any pixel
// data is allocated.
func guardSourceBounds(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.NewConversionError(domain.ErrCorruptedFile,
			fmt.Sprintf("image reports invalid bounds %dx%d", cfg.Width, cfg.Height), nil)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxSourcePixels {
		return domain.NewConversionError(domain.ErrDimensionLimitExceeded,
			fmt.Sprintf("image pixel count %d exceeds the %d limit", pixels, maxSourcePixels), nil)
	}
	return nil
}

// outputHasAlpha reports whether the encoded result carries transparency:
// the destination must be alpha-capable and the decoded image non-opaque.
func outputHasAlpha(img image.Image, dst domain.Format) bool {
	if !dst.SupportsAlpha() {
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
