package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/domain"
)

// avifSpeed trades encode time for compression; 8 keeps request latency
// tolerable at mild size cost.
const avifSpeed = 8

// Native is the full-fidelity conversion path. It decodes and encodes
// through the imaging library for the formats it covers and falls back to
// dedicated webp/avif codecs for the rest.
type Native struct{}

func NewNative() *Native {
	return &Native{}
}

func (n *Native) Method() domain.ExecutionMethod {
	return domain.MethodServer
}

func (n *Native) Convert(ctx context.Context, src []byte, srcFormat domain.Format, opts application.ConversionOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := n.decode(src, srcFormat)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := application.FitDimensions(bounds.Dx(), bounds.Dy(), opts.Width, opts.Height, opts.MaintainAspect)
	if w != bounds.Dx() || h != bounds.Dy() {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	dst := domain.NormalizeFormat(opts.OutputFormat)
	data, err := n.encode(img, dst, opts.EffectiveQuality())
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

func (n *Native) decode(src []byte, srcFormat domain.Format) (image.Image, error) {
	switch domain.NormalizeFormat(srcFormat) {
	case domain.FormatAVIF:
		cfg, err := avif.DecodeConfig(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrCorruptedFile, "reading avif header", err)
		}
		if err := guardSourceBounds(cfg); err != nil {
			return nil, err
		}
		img, err := avif.Decode(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrConversionFailed, "decoding avif", err)
		}
		return img, nil
	case domain.FormatWebP:
		cfg, err := webp.DecodeConfig(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrCorruptedFile, "reading webp header", err)
		}
		if err := guardSourceBounds(cfg); err != nil {
			return nil, err
		}
		img, err := webp.Decode(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrConversionFailed, "decoding webp", err)
		}
		return img, nil
	default:
		cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrCorruptedFile, "reading image header", err)
		}
		if err := guardSourceBounds(cfg); err != nil {
			return nil, err
		}
		img, err := imaging.Decode(bytes.NewReader(src))
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrConversionFailed, "decoding image", err)
		}
		return img, nil
	}
}

func (n *Native) encode(img image.Image, dst domain.Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch dst {
	case domain.FormatWebP:
		err = webp.Encode(&buf, img, webp.Options{Quality: quality})
	case domain.FormatAVIF:
		err = avif.Encode(&buf, img, avif.Options{Quality: quality, QualityAlpha: quality, Speed: avifSpeed})
	default:
		var format imaging.Format
		format, err = imaging.FormatFromExtension(dst.Extension())
		if err != nil {
			return nil, domain.NewConversionError(domain.ErrUnsupportedOperation,
				fmt.Sprintf("native path cannot encode %s", dst), err)
		}
		err = imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrConversionFailed,
			fmt.Sprintf("encoding to %s", dst), err)
	}
	return buf.Bytes(), nil
}

// Probe pushes a one-pixel image through a full encode cycle. The health
// endpoint reports the engine unavailable when this fails.
func (n *Native) Probe() error {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("engine probe failed: %w", err)
	}
	return nil
}
