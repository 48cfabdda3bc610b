package application

import "math"

// FitDimensions computes the output size for a conversion given the source
// size and the requested targets. Zero targetW/targetH mean "not requested".
//
// With maintainAspect set, the source aspect ratio is preserved: a single
// target fixes one axis and derives the other by rounding, and when both
// targets are given the more constraining axis wins so the result fits
// inside both bounds. Without it, each supplied axis is stretched to its
// target independently and an unsupplied axis keeps the source size.
// Enlargement is disabled throughout; the result never exceeds the source
// on either axis.
func FitDimensions(srcW, srcH, targetW, targetH int, maintainAspect bool) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return srcW, srcH
	}
	if targetW <= 0 && targetH <= 0 {
		return srcW, srcH
	}

	if !maintainAspect {
		w, h := srcW, srcH
		if targetW > 0 {
			w = min(targetW, srcW)
		}
		if targetH > 0 {
			h = min(targetH, srcH)
		}
		return w, h
	}

	aspect := float64(srcW) / float64(srcH)

	switch {
	case targetW > 0 && targetH > 0:
		scale := math.Min(float64(targetW)/float64(srcW), float64(targetH)/float64(srcH))
		if scale >= 1 {
			return srcW, srcH
		}
		w := int(math.Round(float64(srcW) * scale))
		h := int(math.Round(float64(srcH) * scale))
		return max(w, 1), max(h, 1)
	case targetW > 0:
		if targetW >= srcW {
			return srcW, srcH
		}
		h := int(math.Round(float64(targetW) / aspect))
		return targetW, max(h, 1)
	default:
		if targetH >= srcH {
			return srcW, srcH
		}
		w := int(math.Round(float64(targetH) * aspect))
		return max(w, 1), targetH
	}
}
