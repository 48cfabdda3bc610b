package engine

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
)

// testImage builds a WxH gradient so encoders have non-trivial content.
func testImage(t *testing.T, w, h int, withAlpha bool) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if withAlpha && x < w/2 {
				a = 128
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: a})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// hugePNGHeader fabricates a syntactically valid PNG signature and IHDR
// chunk claiming the given dimensions, with no pixel data behind it.
// DecodeConfig parses it happily, so it exercises the bounds guard without
// allocating anything.
func hugePNGHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // RGBA
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter
	ihdr[12] = 0 // interlace

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], 13)
	buf.Write(length[:])
	buf.WriteString("IHDR")
	buf.Write(ihdr)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(append([]byte("IHDR"), ihdr...)))
	buf.Write(crc[:])
	return buf.Bytes()
}

// hugeWebPHeader fabricates a lossless webp (VP8L) header claiming
// 16384x16384, the format's maximum. A real file this size compresses to a
// few KB, so the header has to be rejected before pixel allocation.
func hugeWebPHeader(t *testing.T) []byte {
	t.Helper()
	// VP8L dimension bits are LSB-first: 14 bits width-1, 14 bits height-1,
	// 1 alpha bit, 3 version bits. All-ones dimensions pack to FF FF FF 0F.
	payload := []byte{0x2F, 0xFF, 0xFF, 0xFF, 0x0F}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(4+8+len(payload)+1))
	buf.Write(size[:])
	buf.WriteString("WEBPVP8L")
	binary.LittleEndian.PutUint32(size[:], uint32(len(payload)))
	buf.Write(size[:])
	buf.Write(payload)
	buf.WriteByte(0) // riff pad
	return buf.Bytes()
}

func TestRegistryForPair(t *testing.T) {
	reg := NewRegistry(NewCanvas(), NewNative())

	c, err := reg.ForPair(domain.FormatJPG, domain.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodClient, c.Method())

	c, err = reg.ForPair(domain.FormatJPG, domain.FormatWebP)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodServer, c.Method())

	_, err = reg.ForPair(domain.FormatPNG, domain.FormatPNG)
	require.Error(t, err)
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, domain.ErrUnsupportedOperation, convErr.Code)
}

func TestRegistryMissingMethod(t *testing.T) {
	reg := NewRegistry(NewCanvas())

	_, err := reg.ForPair(domain.FormatJPG, domain.FormatWebP)
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, domain.ErrEngineError, convErr.Code)
}

func TestCanvasConvertJPEGToPNG(t *testing.T) {
	c := NewCanvas()
	src := encodeJPEG(t, testImage(t, 800, 600, false))

	res, err := c.Convert(context.Background(), src, domain.FormatJPG, application.ConversionOptions{
		OutputFormat:   domain.FormatPNG,
		Width:          400,
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, res.Format)
	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 300, res.Height)
	assert.Equal(t, int64(len(res.Data)), res.Size)

	decoded, format, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 400, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestCanvasConvertPNGToGIF(t *testing.T) {
	c := NewCanvas()
	src := encodePNG(t, testImage(t, 64, 64, false))

	res, err := c.Convert(context.Background(), src, domain.FormatPNG, application.ConversionOptions{
		OutputFormat:   domain.FormatGIF,
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatGIF, res.Format)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 64, res.Height)

	_, format, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "gif", format)
}

func TestCanvasRejectsNonCanvasDestination(t *testing.T) {
	c := NewCanvas()
	src := encodePNG(t, testImage(t, 8, 8, false))

	_, err := c.Convert(context.Background(), src, domain.FormatPNG, application.ConversionOptions{
		OutputFormat: domain.FormatTIFF,
	})
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, domain.ErrUnsupportedOperation, convErr.Code)
}

func TestCanvasCorruptInput(t *testing.T) {
	c := NewCanvas()

	_, err := c.Convert(context.Background(), []byte("definitely not an image"), domain.FormatJPG, application.ConversionOptions{
		OutputFormat: domain.FormatPNG,
	})
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, domain.ErrCorruptedFile, convErr.Code)
}

func TestCanvasCancelledContext(t *testing.T) {
	c := NewCanvas()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Convert(ctx, encodePNG(t, testImage(t, 8, 8, false)), domain.FormatPNG, application.ConversionOptions{
		OutputFormat: domain.FormatJPG,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNativeConvertPNGToTIFFAndBack(t *testing.T) {
	n := NewNative()
	src := encodePNG(t, testImage(t, 120, 80, false))

	res, err := n.Convert(context.Background(), src, domain.FormatPNG, application.ConversionOptions{
		OutputFormat:   domain.FormatTIFF,
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatTIFF, res.Format)
	assert.Equal(t, 120, res.Width)
	assert.Equal(t, 80, res.Height)

	back, err := n.Convert(context.Background(), res.Data, domain.FormatTIFF, application.ConversionOptions{
		OutputFormat:   domain.FormatPNG,
		Width:          60,
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, back.Width)
	assert.Equal(t, 40, back.Height)
}

func TestNativeConvertPNGToBMP(t *testing.T) {
	n := NewNative()
	src := encodePNG(t, testImage(t, 32, 32, false))

	res, err := n.Convert(context.Background(), src, domain.FormatPNG, application.ConversionOptions{
		OutputFormat:   domain.FormatBMP,
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatBMP, res.Format)
	assert.False(t, res.HasAlpha, "bmp output must not report alpha")
}

func TestNativeConvertToWebP(t *testing.T) {
	n := NewNative()
	src := encodePNG(t, testImage(t, 48, 48, true))

	res, err := n.Convert(context.Background(), src, domain.FormatPNG, application.ConversionOptions{
		OutputFormat:   domain.FormatWebP,
		Quality:        intPtr(80),
		MaintainAspect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatWebP, res.Format)
	assert.True(t, res.HasAlpha)
	assert.NotEmpty(t, res.Data)
}

func TestNativeDimensionGuard(t *testing.T) {
	n := NewNative()

	tests := []struct {
		name   string
		src    []byte
		format domain.Format
	}{
		{name: "png", src: hugePNGHeader(t, 20000, 20000), format: domain.FormatPNG},
		{name: "webp", src: hugeWebPHeader(t), format: domain.FormatWebP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Convert(context.Background(), tt.src, tt.format, application.ConversionOptions{
				OutputFormat: domain.FormatJPG,
			})
			var convErr *domain.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, domain.ErrDimensionLimitExceeded, convErr.Code)
		})
	}
}

func TestNativeProbe(t *testing.T) {
	require.NoError(t, NewNative().Probe())
}

func TestOutputHasAlpha(t *testing.T) {
	opaque := testImage(t, 4, 4, false)
	translucent := testImage(t, 4, 4, true)

	assert.False(t, outputHasAlpha(opaque, domain.FormatPNG))
	assert.True(t, outputHasAlpha(translucent, domain.FormatPNG))
	assert.False(t, outputHasAlpha(translucent, domain.FormatJPG), "jpg cannot carry alpha")
}

func intPtr(i int) *int { return &i }
