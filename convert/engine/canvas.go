package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
)

// Canvas is the rendering-surface conversion path: decode through the
// registered stdlib and x/image decoders, scale by drawing onto a fresh RGBA
// canvas, encode with stdlib encoders only. The capability table routes a
// pair here only when the destination is one of jpg, png, or gif.
type Canvas struct{}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Method() domain.ExecutionMethod {
	return domain.MethodClient
}

func (c *Canvas) Convert(ctx context.Context, src []byte, srcFormat domain.Format, opts application.ConversionOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrCorruptedFile, "reading image header", err)
	}
	if err := guardSourceBounds(cfg); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrConversionFailed, "decoding image", err)
	}

	bounds := img.Bounds()
	w, h := application.FitDimensions(bounds.Dx(), bounds.Dy(), opts.Width, opts.Height, opts.MaintainAspect)
	if w != bounds.Dx() || h != bounds.Dy() {
		img = scaleOnCanvas(img, w, h)
	}

	dst := domain.NormalizeFormat(opts.OutputFormat)
	data, err := c.encode(img, dst, opts.EffectiveQuality())
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:     data,
		Format:   dst,
		Width:    w,
		Height:   h,
		HasAlpha: outputHasAlpha(img, dst),
		Size:     int64(len(data)),
	}, nil
}

func (c *Canvas) encode(img image.Image, dst domain.Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch dst {
	case domain.FormatJPG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case domain.FormatPNG:
		err = png.Encode(&buf, img)
	case domain.FormatGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, domain.NewConversionError(domain.ErrUnsupportedOperation,
			fmt.Sprintf("canvas path cannot encode %s", dst), nil)
	}
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrConversionFailed,
			fmt.Sprintf("encoding to %s", dst), err)
	}
	return buf.Bytes(), nil
}

// scaleOnCanvas draws src onto a new RGBA canvas of the target size.
// CatmullRom trades speed for quality, matching what a browser canvas does
// with its default smoothing.
func scaleOnCanvas(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Over, nil)
	return dst
}
