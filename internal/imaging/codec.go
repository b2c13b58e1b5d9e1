package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Raster is a decoded pixel grid.
//
// Pixels are stored row-major with Channels bytes per pixel: 3 for RGB,
// 4 for non-premultiplied RGBA. A valid Raster always satisfies
// len(Pix) == Width*Height*Channels.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// Validate checks the buffer invariant and the channel layout.
func (r *Raster) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Errorf("non-positive dimensions %dx%d", r.Width, r.Height)
	}
	if r.Channels != 3 && r.Channels != 4 {
		return errors.Errorf("unsupported channel count %d", r.Channels)
	}
	if want := r.Width * r.Height * r.Channels; len(r.Pix) != want {
		return errors.Errorf("pixel buffer has %d bytes, want %d for %dx%dx%d",
			len(r.Pix), want, r.Width, r.Height, r.Channels)
	}
	return nil
}

// RGB returns a 3-channel copy of the raster. Alpha, if present, is dropped
// without compositing.
func (r *Raster) RGB() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Channels: 3, Pix: make([]uint8, 0, r.Width*r.Height*3)}
	if r.Channels == 3 {
		out.Pix = append(out.Pix, r.Pix...)
		return out
	}
	for i := 0; i+r.Channels <= len(r.Pix); i += r.Channels {
		out.Pix = append(out.Pix, r.Pix[i], r.Pix[i+1], r.Pix[i+2])
	}
	return out
}

// Image wraps the raster as an *image.NRGBA. 4-channel rasters share their
// buffer with the result; 3-channel rasters are expanded with opaque alpha.
func (r *Raster) Image() (*image.NRGBA, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, r.Width, r.Height)
	if r.Channels == 4 {
		return &image.NRGBA{Pix: r.Pix, Stride: 4 * r.Width, Rect: rect}, nil
	}
	img := image.NewNRGBA(rect)
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		img.Pix[j] = r.Pix[i]
		img.Pix[j+1] = r.Pix[i+1]
		img.Pix[j+2] = r.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img, nil
}

// FromImage converts any image into a 4-channel raster anchored at (0,0).
func FromImage(img image.Image) *Raster {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return &Raster{Width: b.Dx(), Height: b.Dy(), Channels: 4, Pix: nrgba.Pix}
}

// DecodeBase64 decodes a standard base64 payload. A leading data URL header
// ("data:image/png;base64,") is tolerated and stripped.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, newError(ErrDecode, "decode base64", err)
	}
	return data, nil
}

// decodeImage decodes data by content and reports the sniffed container.
func decodeImage(data []byte, maxPixels int) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, FormatUnknown, newErrorf(ErrDecode, "decode", "empty input")
	}

	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, FormatUnknown, newError(ErrDecode, "decode", err)
		}
		if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
			return nil, FormatUnknown, newErrorf(ErrValidation, "decode", "image is %dx%d, exceeding the %d pixel limit",
				cfg.Width, cfg.Height, maxPixels)
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, FormatUnknown, newError(ErrDecode, "decode", err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, FormatUnknown, newErrorf(ErrDecode, "decode", "image has empty bounds %v", b)
	}
	return img, Sniff(data), nil
}

// Decode decodes an encoded image into a 4-channel raster. The container is
// detected from the bytes themselves.
func Decode(data []byte) (*Raster, Format, error) {
	img, format, err := decodeImage(data, 0)
	if err != nil {
		return nil, FormatUnknown, err
	}
	return FromImage(img), format, nil
}

// EncodeOptions tunes lossy encoders. Zero values select format defaults.
type EncodeOptions struct {
	// Quality is the 1-100 quality for JPEG, and for WebP switches from
	// lossless to lossy encoding. Other formats ignore it.
	Quality int
}

// DefaultJPEGQuality is used when no quality is requested.
const DefaultJPEGQuality = 75

// Encode serializes a raster into the target container.
func Encode(r *Raster, format Format, opts EncodeOptions) ([]byte, error) {
	stage := "encode " + format.String()

	img, err := r.Image()
	if err != nil {
		return nil, newError(ErrEncode, stage, err)
	}

	var buf bytes.Buffer
	switch format {
	case PNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case JPEG:
		quality := opts.Quality
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case BMP:
		err = imaging.Encode(&buf, img, imaging.BMP)
	case GIF:
		err = imaging.Encode(&buf, img, imaging.GIF)
	case WEBP:
		wopts := &webp.Options{Lossless: true}
		if opts.Quality > 0 {
			wopts = &webp.Options{Quality: float32(opts.Quality)}
		}
		err = webp.Encode(&buf, img, wopts)
	default:
		return nil, newErrorf(ErrEncode, stage, "no encoder for format %d", int(format))
	}
	if err != nil {
		return nil, newError(ErrEncode, stage, err)
	}
	return buf.Bytes(), nil
}

// hasAlpha reports whether any decoded pixel is not fully opaque.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// colorDepth returns "16-bit" for 16 bit per channel image types and "8-bit"
// for everything else.
func colorDepth(img image.Image) string {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return "16-bit"
	}
	return "8-bit"
}
