package imaging

import (
	"image"
)

// Engine runs transform operations. It holds only immutable limits and
// defaults, so a single Engine may be shared by concurrent callers; every
// call decodes into fresh buffers.
//
// The zero Engine has no size limit and uses format default qualities.
type Engine struct {
	// MaxPixels rejects inputs whose width*height exceeds it before they are
	// fully decoded, and resize targets larger than it. Zero disables the
	// check.
	MaxPixels int

	// JPEGQuality is used by Convert when the request carries no quality.
	// Zero means DefaultJPEGQuality.
	JPEGQuality int

	// WebPQuality is used by Convert when the request carries no quality.
	// Zero keeps WebP output lossless.
	WebPQuality int
}

var defaultEngine Engine

// decode turns a base64 payload into a decoded image plus its raw bytes.
func (e Engine) decode(data string) (image.Image, []byte, Format, error) {
	raw, err := DecodeBase64(data)
	if err != nil {
		return nil, nil, FormatUnknown, err
	}
	img, format, err := decodeImage(raw, e.MaxPixels)
	if err != nil {
		return nil, nil, FormatUnknown, err
	}
	return img, raw, format, nil
}

func (e Engine) decodeRaster(data string) (*Raster, error) {
	img, _, _, err := e.decode(data)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Crop runs Engine.Crop on an unlimited engine.
func Crop(data string, spec CropSpec) (*ProcessedImage, error) {
	return defaultEngine.Crop(data, spec)
}

// Resize runs Engine.Resize on an unlimited engine.
func Resize(data string, spec ResizeSpec) (*ProcessedImage, error) {
	return defaultEngine.Resize(data, spec)
}

// Convert runs Engine.Convert on an unlimited engine.
func Convert(data string, spec ConvertSpec) (*ProcessedImage, error) {
	return defaultEngine.Convert(data, spec)
}

// Compare runs Engine.Compare on an unlimited engine.
func Compare(a, b string) (*ProcessedImage, error) {
	return defaultEngine.Compare(a, b)
}

// CompareStats runs Engine.CompareStats on an unlimited engine.
func CompareStats(a, b string) (*DiffStats, error) {
	return defaultEngine.CompareStats(a, b)
}

// Inspect runs Engine.Inspect on an unlimited engine.
func Inspect(data string) (*ImageInfo, error) {
	return defaultEngine.Inspect(data)
}
