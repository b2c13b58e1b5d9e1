package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Difference map tuning. Channel differences above DiffThreshold saturate to
// 255; smaller ones are multiplied by DiffGain (at most 100).
const (
	DiffThreshold = 10
	DiffGain      = 10
)

// Compare renders a visual difference map of two images as PNG.
//
// Both inputs are stretched with the resample filter to a common canvas of
// max(w1,w2) x max(h1,h2), ignoring aspect ratio, and flattened to RGB. Each
// output channel is the enhanced absolute difference of the inputs.
func (e Engine) Compare(a, b string) (*ProcessedImage, error) {
	ra, rb, err := e.canvasPair(a, b)
	if err != nil {
		return nil, err
	}

	diff, err := DiffRasters(ra, rb)
	if err != nil {
		return nil, err
	}

	out, err := Encode(diff, PNG, EncodeOptions{})
	if err != nil {
		return nil, err
	}
	return newProcessedImage(out, PNG, diff.Width, diff.Height), nil
}

// canvasPair decodes both inputs and stretches them to the shared canvas as
// 3-channel rasters.
func (e Engine) canvasPair(a, b string) (*Raster, *Raster, error) {
	imgA, _, _, err := e.decode(a)
	if err != nil {
		return nil, nil, err
	}
	imgB, _, _, err := e.decode(b)
	if err != nil {
		return nil, nil, err
	}

	w, h := Canvas(imgA.Bounds(), imgB.Bounds())
	ra := FromImage(imaging.Resize(imgA, w, h, ResampleFilter)).RGB()
	rb := FromImage(imaging.Resize(imgB, w, h, ResampleFilter)).RGB()
	return ra, rb, nil
}

// Canvas returns the element-wise maximum of two sizes.
func Canvas(a, b image.Rectangle) (int, int) {
	w, h := a.Dx(), a.Dy()
	if b.Dx() > w {
		w = b.Dx()
	}
	if b.Dy() > h {
		h = b.Dy()
	}
	return w, h
}

// DiffRasters computes the enhanced difference of two RGB rasters of the same
// size. The result is checked against its declared dimensions before it is
// returned.
func DiffRasters(a, b *Raster) (*Raster, error) {
	if a.Channels != 3 || b.Channels != 3 {
		return nil, newErrorf(ErrBufferConstruction, "compare", "difference needs RGB inputs, got %d and %d channels",
			a.Channels, b.Channels)
	}

	n := len(a.Pix)
	if len(b.Pix) < n {
		n = len(b.Pix)
	}
	pix := make([]uint8, 0, n)
	for i := 0; i < n; i++ {
		pix = append(pix, EnhanceDiff(absDiff(a.Pix[i], b.Pix[i])))
	}

	diff := &Raster{Width: a.Width, Height: a.Height, Channels: 3, Pix: pix}
	if want := a.Width * a.Height * 3; len(pix) != want || a.Width != b.Width || a.Height != b.Height {
		return nil, newErrorf(ErrBufferConstruction, "compare", "difference buffer has %d bytes, want %d for %dx%d canvas",
			len(pix), want, a.Width, a.Height)
	}
	return diff, nil
}

// EnhanceDiff maps a channel difference to its visible intensity.
func EnhanceDiff(d uint8) uint8 {
	if d > DiffThreshold {
		return 0xFF
	}
	return d * DiffGain
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
