package domain

import "bytes"

// SniffLen is how many leading bytes the detector needs. Every signature in
// the table fits inside this window.
const SniffLen = 12

// MagicSignature maps a leading byte pattern at a fixed offset to a format.
// Signatures identify the true input format independent of any declared MIME
// type; they are never consulted for output.
type MagicSignature struct {
	Format  Format
	Offset  int
	Pattern []byte
}

// signatures is ordered so the detector can stop at the first match. Entries
// with longer or more specific patterns come before shorter ones (bmp's
// two-byte "BM" goes last). The WebP entry matches the "WEBP" fourcc at
// offset 8; riffHeader is verified separately since "RIFF" alone also
// prefixes wav and avi containers.
var signatures = []MagicSignature{
	{Format: FormatPNG, Offset: 0, Pattern: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{Format: FormatJPG, Offset: 0, Pattern: []byte{0xFF, 0xD8, 0xFF}},
	{Format: FormatGIF, Offset: 0, Pattern: []byte("GIF87a")},
	{Format: FormatGIF, Offset: 0, Pattern: []byte("GIF89a")},
	{Format: FormatAVIF, Offset: 4, Pattern: []byte("ftypavif")},
	{Format: FormatWebP, Offset: 8, Pattern: []byte("WEBP")},
	{Format: FormatTIFF, Offset: 0, Pattern: []byte{0x49, 0x49, 0x2A, 0x00}},
	{Format: FormatTIFF, Offset: 0, Pattern: []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{Format: FormatBMP, Offset: 0, Pattern: []byte("BM")},
}

var riffHeader = []byte("RIFF")

// Signatures returns the magic-byte table. Callers must not mutate it.
func Signatures() []MagicSignature {
	return signatures
}

// DetectFormat sniffs the true format from the leading bytes of a file.
// It inspects at most SniffLen bytes. The second return value is false when
// no signature matches.
func DetectFormat(head []byte) (Format, bool) {
	if len(head) > SniffLen {
		head = head[:SniffLen]
	}
	for _, s := range signatures {
		end := s.Offset + len(s.Pattern)
		if len(head) < end {
			continue
		}
		if !bytes.Equal(head[s.Offset:end], s.Pattern) {
			continue
		}
		if s.Format == FormatWebP && !bytes.HasPrefix(head, riffHeader) {
			continue
		}
		return s.Format, true
	}
	return "", false
}
