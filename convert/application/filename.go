package application

import (
	"path"
	"regexp"
	"strings"

	"github.com/rasterform/rasterd/convert/domain"
)

const (
	// DefaultFilename is used when sanitization leaves nothing usable.
	DefaultFilename = "download"

	// maxFilenameLen caps sanitized names at the common filesystem limit.
	maxFilenameLen = 255
)

var (
	repeatedDots    = regexp.MustCompile(`\.{2,}`)
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SanitizeFilename makes a user-supplied filename safe to persist or echo
// back: path separators and null bytes are stripped, repeated dots are
// collapsed, remaining characters are restricted to [A-Za-z0-9._-], and the
// result is capped at 255 characters. An empty or all-dots result falls back
// to DefaultFilename.
func SanitizeFilename(name string) string {
	s := strings.NewReplacer("/", "", "\\", "", "\x00", "").Replace(name)
	s = repeatedDots.ReplaceAllString(s, ".")
	s = disallowedChars.ReplaceAllString(s, "_")
	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
	}
	if strings.Trim(s, "._-") == "" {
		return DefaultFilename
	}
	return s
}

// HasUnsafePath reports whether a raw filename contains path-separator
// characters, parent-directory references, or null bytes. The validator
// rejects such names outright rather than silently repairing them.
func HasUnsafePath(name string) bool {
	return strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..")
}

// SuggestedFilename derives the download name for a converted file: the
// sanitized base name of the original with the destination extension.
func SuggestedFilename(original string, dst domain.Format) string {
	base := SanitizeFilename(original)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if strings.Trim(base, "._-") == "" {
		base = DefaultFilename
	}
	return base + "." + domain.NormalizeFormat(dst).Extension()
}
