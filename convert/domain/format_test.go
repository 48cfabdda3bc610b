package domain

import "testing"

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    Format
		expected Format
	}{
		{
			name:     "jpeg collapses to jpg",
			input:    FormatJPEG,
			expected: FormatJPG,
		},
		{
			name:     "jpg unchanged",
			input:    FormatJPG,
			expected: FormatJPG,
		},
		{
			name:     "uppercase folded",
			input:    Format("PNG"),
			expected: FormatPNG,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    Format(" webp "),
			expected: FormatWebP,
		},
		{
			name:     "unknown tag passes through lowered",
			input:    Format("SVG"),
			expected: Format("svg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeFormat(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeFormat(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			// Normalization must be idempotent.
			if again := NormalizeFormat(result); again != result {
				t.Errorf("NormalizeFormat(%q) not idempotent: got %q", result, again)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		ok     bool
	}{
		{name: "jpg", input: "jpg", format: FormatJPG, ok: true},
		{name: "jpeg alias", input: "jpeg", format: FormatJPG, ok: true},
		{name: "avif", input: "avif", format: FormatAVIF, ok: true},
		{name: "unsupported", input: "svg", format: Format("svg"), ok: false},
		{name: "empty", input: "", format: Format(""), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := ParseFormat(tt.input)
			if f != tt.format || ok != tt.ok {
				t.Errorf("ParseFormat(%q) = (%q, %v), want (%q, %v)", tt.input, f, ok, tt.format, tt.ok)
			}
		})
	}
}

func TestFormatMIMERoundTrip(t *testing.T) {
	for _, f := range Formats {
		mime := f.MIMEType()
		if mime == "" {
			t.Errorf("format %q has no MIME type", f)
			continue
		}
		back, ok := FormatFromMIME(mime)
		if !ok || back != f {
			t.Errorf("FormatFromMIME(%q) = (%q, %v), want (%q, true)", mime, back, ok, f)
		}
	}

	if f, ok := FormatFromMIME("image/jpg"); !ok || f != FormatJPG {
		t.Errorf("FormatFromMIME(image/jpg) = (%q, %v), want (jpg, true)", f, ok)
	}
	if f, ok := FormatFromMIME("image/jpeg; charset=binary"); !ok || f != FormatJPG {
		t.Errorf("FormatFromMIME with parameter = (%q, %v), want (jpg, true)", f, ok)
	}
	if _, ok := FormatFromMIME("application/pdf"); ok {
		t.Error("FormatFromMIME(application/pdf) should not resolve")
	}
}

func TestQualityApplies(t *testing.T) {
	lossy := []Format{FormatJPG, FormatJPEG, FormatWebP, FormatAVIF}
	for _, f := range lossy {
		if !f.QualityApplies() {
			t.Errorf("%q should accept a quality parameter", f)
		}
	}

	lossless := []Format{FormatPNG, FormatGIF, FormatTIFF, FormatBMP}
	for _, f := range lossless {
		if f.QualityApplies() {
			t.Errorf("%q should ignore a quality parameter", f)
		}
	}
}

func TestSupportsAlpha(t *testing.T) {
	if FormatJPG.SupportsAlpha() {
		t.Error("jpg must not report alpha support")
	}
	if FormatBMP.SupportsAlpha() {
		t.Error("bmp must not report alpha support")
	}
	for _, f := range []Format{FormatPNG, FormatWebP, FormatGIF, FormatAVIF, FormatTIFF} {
		if !f.SupportsAlpha() {
			t.Errorf("%q should report alpha support", f)
		}
	}
}
