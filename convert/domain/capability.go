package domain

// ExecutionMethod names which side performs the pixel transformation.
type ExecutionMethod string

const (
	// MethodClient conversions run on the minimal rendering-surface path:
	// stdlib decoders plus a draw canvas, stdlib encoders only.
	MethodClient ExecutionMethod = "client"
	// MethodServer conversions run on the full-fidelity native engine.
	MethodServer ExecutionMethod = "server"
)

// ConversionCapability states which destination formats a source format may
// convert to and which execution path handles those pairs.
type ConversionCapability struct {
	Source       Format
	Destinations []Format
	Method       ExecutionMethod
}

// capabilities is the process-wide conversion matrix. It is constructed once
// and never mutated. Lookup is a linear scan in declaration order; the first
// entry matching (source, destination) wins, so no pair may appear in two
// entries with different methods. A test enforces that invariant.
var capabilities = []ConversionCapability{
	{Source: FormatJPG, Destinations: []Format{FormatPNG, FormatGIF}, Method: MethodClient},
	{Source: FormatJPG, Destinations: []Format{FormatWebP, FormatAVIF, FormatTIFF, FormatBMP}, Method: MethodServer},

	{Source: FormatPNG, Destinations: []Format{FormatJPG, FormatGIF}, Method: MethodClient},
	{Source: FormatPNG, Destinations: []Format{FormatWebP, FormatAVIF, FormatTIFF, FormatBMP}, Method: MethodServer},

	{Source: FormatGIF, Destinations: []Format{FormatJPG, FormatPNG}, Method: MethodClient},
	{Source: FormatGIF, Destinations: []Format{FormatWebP, FormatAVIF, FormatTIFF, FormatBMP}, Method: MethodServer},

	{Source: FormatBMP, Destinations: []Format{FormatJPG, FormatPNG, FormatGIF}, Method: MethodClient},
	{Source: FormatBMP, Destinations: []Format{FormatWebP, FormatAVIF, FormatTIFF}, Method: MethodServer},

	{Source: FormatWebP, Destinations: []Format{FormatJPG, FormatPNG, FormatGIF}, Method: MethodClient},
	{Source: FormatWebP, Destinations: []Format{FormatAVIF, FormatTIFF, FormatBMP}, Method: MethodServer},

	{Source: FormatAVIF, Destinations: []Format{FormatJPG, FormatPNG, FormatWebP, FormatGIF, FormatTIFF, FormatBMP}, Method: MethodServer},

	{Source: FormatTIFF, Destinations: []Format{FormatJPG, FormatPNG, FormatWebP, FormatGIF, FormatAVIF, FormatBMP}, Method: MethodServer},
}

// Capabilities returns the conversion matrix. Callers must not mutate the
// returned slice.
func Capabilities() []ConversionCapability {
	return capabilities
}

// LookupCapability resolves a (source, destination) pair against the matrix.
// Both tags are normalized before matching. The second return value is false
// when no entry covers the pair.
func LookupCapability(src, dst Format) (ConversionCapability, bool) {
	src = NormalizeFormat(src)
	dst = NormalizeFormat(dst)
	for _, c := range capabilities {
		if c.Source != src {
			continue
		}
		for _, d := range c.Destinations {
			if d == dst {
				return c, true
			}
		}
	}
	return ConversionCapability{}, false
}

// IsConversionSupported reports whether the matrix covers the pair.
func IsConversionSupported(src, dst Format) bool {
	_, ok := LookupCapability(src, dst)
	return ok
}

// DestinationsFor returns every destination reachable from src, in matrix
// order. The result is a fresh slice owned by the caller.
func DestinationsFor(src Format) []Format {
	src = NormalizeFormat(src)
	var out []Format
	for _, c := range capabilities {
		if c.Source == src {
			out = append(out, c.Destinations...)
		}
	}
	return out
}

// SourcesForMethod returns the source formats that have at least one pair
// handled by the given method.
func SourcesForMethod(m ExecutionMethod) []Format {
	var out []Format
	seen := make(map[Format]bool)
	for _, c := range capabilities {
		if c.Method == m && !seen[c.Source] {
			seen[c.Source] = true
			out = append(out, c.Source)
		}
	}
	return out
}
