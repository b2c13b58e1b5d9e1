package imaging

import (
	"image"
)

// Crop extracts a rectangular region from an image and returns it as PNG.
//
// The region is copied pixel for pixel with no resampling, so the output is
// exactly spec.Width x spec.Height. A region that does not fit inside the
// source fails with ErrValidation.
func (e Engine) Crop(data string, spec CropSpec) (*ProcessedImage, error) {
	src, err := e.decodeRaster(data)
	if err != nil {
		return nil, err
	}

	rect, err := ResolveCrop(src.Width, src.Height, spec)
	if err != nil {
		return nil, err
	}

	cropped := CropRaster(src, rect)

	out, err := Encode(cropped, PNG, EncodeOptions{})
	if err != nil {
		return nil, err
	}
	return newProcessedImage(out, PNG, cropped.Width, cropped.Height), nil
}

// CropRaster copies rect out of src. rect must already be validated against
// the raster bounds.
func CropRaster(src *Raster, rect image.Rectangle) *Raster {
	w, h, ch := rect.Dx(), rect.Dy(), src.Channels
	dst := &Raster{Width: w, Height: h, Channels: ch, Pix: make([]uint8, w*h*ch)}

	srcStride := src.Width * ch
	rowBytes := w * ch
	for y := 0; y < h; y++ {
		from := (rect.Min.Y+y)*srcStride + rect.Min.X*ch
		copy(dst.Pix[y*rowBytes:(y+1)*rowBytes], src.Pix[from:from+rowBytes])
	}
	return dst
}
