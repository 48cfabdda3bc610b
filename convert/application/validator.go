package application

import (
	"fmt"

	"github.com/rasterform/rasterd/convert/domain"
)

// ValidationRequest is the input to one validation pass. Head carries the
// leading bytes of the upload (at least domain.SniffLen when the file is
// that large); the validator performs no I/O of its own.
type ValidationRequest struct {
	Filename     string
	Size         int64
	DeclaredMIME string
	Head         []byte
	OutputFormat string
	// Quality is nil when not supplied.
	Quality *int
	// Width and Height are requested resize targets; zero means unset.
	Width  int
	Height int
}

// Validator runs the ordered request checks. It is stateless apart from its
// limits and safe for concurrent use.
type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Validate runs the check chain, short-circuiting on the first failure.
// Order matters: later checks assume the earlier ones passed (the pair check
// relies on a sniffed source format, the dimension check on a valid output
// format). On success the verdict details carry the detected source format,
// the resolved execution method, and any non-fatal warnings.
func (v *Validator) Validate(req ValidationRequest) domain.ValidationVerdict {
	if verdict := v.checkFilename(req); !verdict.Valid {
		return verdict
	}
	if verdict := v.checkSize(req); !verdict.Valid {
		return verdict
	}
	if verdict := v.checkDeclaredMIME(req); !verdict.Valid {
		return verdict
	}
	src, verdict := v.sniffFormat(req)
	if !verdict.Valid {
		return verdict
	}
	capability, verdict := v.checkPair(src, req)
	if !verdict.Valid {
		return verdict
	}
	warning, verdict := v.checkQuality(req)
	if !verdict.Valid {
		return verdict
	}
	if verdict := v.checkTargetDimensions(req); !verdict.Valid {
		return verdict
	}

	details := map[string]any{
		"sourceFormat": src,
		"method":       capability.Method,
	}
	if declared, ok := domain.FormatFromMIME(req.DeclaredMIME); ok && declared != src {
		details["declaredFormat"] = declared
	}
	if warning != "" {
		details["warning"] = warning
	}
	return domain.Pass(details)
}

func (v *Validator) checkFilename(req ValidationRequest) domain.ValidationVerdict {
	if req.Filename == "" {
		return domain.Fail(domain.ErrMissingParameter, "filename is required", nil)
	}
	if HasUnsafePath(req.Filename) {
		return domain.Fail(domain.ErrInvalidFileType, "filename contains path traversal characters", map[string]any{
			"received": req.Filename,
		})
	}
	return domain.Pass(nil)
}

func (v *Validator) checkSize(req ValidationRequest) domain.ValidationVerdict {
	if req.Size <= 0 {
		return domain.Fail(domain.ErrFileTooSmall, "file is empty", map[string]any{
			"received": req.Size,
		})
	}
	if req.Size > v.limits.MaxFileSize {
		return domain.Fail(domain.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", v.limits.MaxFileSize),
			map[string]any{
				"received": req.Size,
				"limit":    v.limits.MaxFileSize,
			})
	}
	return domain.Pass(nil)
}

func (v *Validator) checkDeclaredMIME(req ValidationRequest) domain.ValidationVerdict {
	if _, ok := domain.FormatFromMIME(req.DeclaredMIME); !ok {
		return domain.Fail(domain.ErrInvalidFileType, "declared content type is not an accepted image type", map[string]any{
			"received": req.DeclaredMIME,
			"allowed":  allowedMIMETypes(),
		})
	}
	return domain.Pass(nil)
}

// sniffFormat trusts the magic bytes over the declared MIME type. The
// declared type is attacker-controlled and is only a cheap pre-filter.
func (v *Validator) sniffFormat(req ValidationRequest) (domain.Format, domain.ValidationVerdict) {
	src, ok := domain.DetectFormat(req.Head)
	if !ok {
		return "", domain.Fail(domain.ErrInvalidFileType, "file content does not match any supported image format", map[string]any{
			"declaredType": req.DeclaredMIME,
		})
	}
	return src, domain.Pass(nil)
}

func (v *Validator) checkPair(src domain.Format, req ValidationRequest) (domain.ConversionCapability, domain.ValidationVerdict) {
	if req.OutputFormat == "" {
		return domain.ConversionCapability{}, domain.Fail(domain.ErrMissingParameter, "outputFormat is required", nil)
	}
	dst, ok := domain.ParseFormat(req.OutputFormat)
	if !ok {
		return domain.ConversionCapability{}, domain.Fail(domain.ErrUnsupportedFormat,
			fmt.Sprintf("%q is not a supported output format", req.OutputFormat),
			map[string]any{
				"received": req.OutputFormat,
				"allowed":  domain.Formats,
			})
	}
	capability, ok := domain.LookupCapability(src, dst)
	if !ok {
		return domain.ConversionCapability{}, domain.Fail(domain.ErrUnsupportedOperation,
			fmt.Sprintf("conversion %s to %s is not supported", src, dst),
			map[string]any{
				"sourceFormat": src,
				"outputFormat": dst,
				"allowed":      domain.DestinationsFor(src),
			})
	}
	return capability, domain.Pass(nil)
}

// checkQuality hard-fails out-of-range values but only flags quality
// supplied for a lossless destination; that softness is deliberate.
func (v *Validator) checkQuality(req ValidationRequest) (string, domain.ValidationVerdict) {
	if req.Quality == nil {
		return "", domain.Pass(nil)
	}
	q := *req.Quality
	if q < MinQuality || q > MaxQuality {
		return "", domain.Fail(domain.ErrInvalidQuality,
			fmt.Sprintf("quality must be between %d and %d", MinQuality, MaxQuality),
			map[string]any{
				"received": q,
				"min":      MinQuality,
				"max":      MaxQuality,
			})
	}
	if dst, ok := domain.ParseFormat(req.OutputFormat); ok && !dst.QualityApplies() {
		return fmt.Sprintf("quality has no effect when converting to %s", dst), domain.Pass(nil)
	}
	return "", domain.Pass(nil)
}

// checkTargetDimensions validates requested resize targets, not the pixel
// size of the source; the source is unknown until decode.
func (v *Validator) checkTargetDimensions(req ValidationRequest) domain.ValidationVerdict {
	for _, axis := range []struct {
		name  string
		value int
	}{
		{name: "width", value: req.Width},
		{name: "height", value: req.Height},
	} {
		if axis.value == 0 {
			continue
		}
		if axis.value < 1 || axis.value > v.limits.MaxDimension {
			return domain.Fail(domain.ErrInvalidDimensions,
				fmt.Sprintf("%s must be between 1 and %d", axis.name, v.limits.MaxDimension),
				map[string]any{
					"received": axis.value,
					"axis":     axis.name,
					"min":      1,
					"max":      v.limits.MaxDimension,
				})
		}
	}
	return domain.Pass(nil)
}

func allowedMIMETypes() []string {
	out := make([]string, 0, len(domain.Formats))
	for _, f := range domain.Formats {
		out = append(out, f.MIMEType())
	}
	return out
}
