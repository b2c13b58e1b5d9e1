package imaging

import (
	"image"
	"math"
)

// CropSpec selects a rectangle by its top-left corner and size.
type CropSpec struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ResizeSpec requests target dimensions, optionally fitted to the source
// aspect ratio.
type ResizeSpec struct {
	Width               int  `json:"width"`
	Height              int  `json:"height"`
	MaintainAspectRatio bool `json:"maintain_aspect_ratio"`
}

// ResolveCrop validates a crop rectangle against the source dimensions.
//
// The rectangle must lie entirely inside the source; nothing is clamped.
// Negative offsets and empty rectangles are rejected as well.
func ResolveCrop(srcW, srcH int, spec CropSpec) (image.Rectangle, error) {
	if spec.X < 0 || spec.Y < 0 || spec.Width < 0 || spec.Height < 0 {
		return image.Rectangle{}, newErrorf(ErrValidation, "crop", "negative crop parameters (%d,%d) %dx%d",
			spec.X, spec.Y, spec.Width, spec.Height)
	}
	if spec.Width == 0 || spec.Height == 0 {
		return image.Rectangle{}, newErrorf(ErrValidation, "crop", "crop size %dx%d is empty", spec.Width, spec.Height)
	}
	// Compared without adding so huge offsets cannot wrap around.
	if spec.X > srcW || spec.Y > srcH || spec.Width > srcW-spec.X || spec.Height > srcH-spec.Y {
		return image.Rectangle{}, newErrorf(ErrValidation, "crop",
			"crop %dx%d at (%d,%d) exceeds image dimensions %dx%d",
			spec.Width, spec.Height, spec.X, spec.Y, srcW, srcH)
	}
	return image.Rect(spec.X, spec.Y, spec.X+spec.Width, spec.Y+spec.Height), nil
}

// ResolveResize computes output dimensions for a resize request.
//
// Without aspect lock the requested size is returned unchanged. With it, the
// axis on which the source is relatively larger is pinned to the request and
// the other axis is derived from the source aspect ratio, rounded half away
// from zero. The result always fits inside the requested box.
func ResolveResize(srcW, srcH int, spec ResizeSpec) (int, int, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return 0, 0, newErrorf(ErrValidation, "resize", "target size %dx%d must be positive", spec.Width, spec.Height)
	}
	if !spec.MaintainAspectRatio {
		return spec.Width, spec.Height, nil
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, newErrorf(ErrValidation, "resize", "source size %dx%d must be positive", srcW, srcH)
	}

	sourceAspect := float64(srcW) / float64(srcH)
	targetAspect := float64(spec.Width) / float64(spec.Height)

	w, h := spec.Width, spec.Height
	if sourceAspect > targetAspect {
		h = int(math.Round(float64(w) / sourceAspect))
	} else {
		w = int(math.Round(float64(h) * sourceAspect))
	}

	if w <= 0 || h <= 0 {
		return 0, 0, newErrorf(ErrValidation, "resize", "aspect-locked size %dx%d for %dx%d source is degenerate",
			w, h, srcW, srcH)
	}
	return w, h, nil
}
