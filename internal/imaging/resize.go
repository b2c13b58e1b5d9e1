package imaging

import (
	"github.com/disintegration/imaging"
)

// ResampleFilter is the fixed filter used for every resize, including the
// canvas stretch in Compare: three-lobe Lanczos.
var ResampleFilter = imaging.Lanczos

// Resize scales an image and returns it as PNG.
//
// Target dimensions come from ResolveResize; with MaintainAspectRatio the
// output fits inside the requested box on its limiting axis.
func (e Engine) Resize(data string, spec ResizeSpec) (*ProcessedImage, error) {
	img, _, _, err := e.decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h, err := ResolveResize(b.Dx(), b.Dy(), spec)
	if err != nil {
		return nil, err
	}

	if e.MaxPixels > 0 && int64(w)*int64(h) > int64(e.MaxPixels) {
		return nil, newErrorf(ErrValidation, "resize", "target %dx%d exceeds the %d pixel limit", w, h, e.MaxPixels)
	}

	resized := FromImage(imaging.Resize(img, w, h, ResampleFilter))

	out, err := Encode(resized, PNG, EncodeOptions{})
	if err != nil {
		return nil, err
	}
	return newProcessedImage(out, PNG, resized.Width, resized.Height), nil
}
