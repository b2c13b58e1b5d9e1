package imaging

import "strings"

// ConvertSpec names the target container and an optional quality hint.
type ConvertSpec struct {
	Format string `json:"format"`

	// Quality (1-100) sets JPEG quality and selects lossy WebP. Nil falls
	// back to the engine defaults.
	Quality *int `json:"quality,omitempty"`
}

// Convert re-encodes an image into another container. Dimensions are kept.
func (e Engine) Convert(data string, spec ConvertSpec) (*ProcessedImage, error) {
	format, err := ParseFormat(spec.Format)
	if err != nil {
		return nil, err
	}

	opts, err := e.encodeOptions(format, spec.Quality)
	if err != nil {
		return nil, err
	}

	src, err := e.decodeRaster(data)
	if err != nil {
		return nil, err
	}

	out, err := Encode(src, format, opts)
	if err != nil {
		return nil, err
	}
	res := newProcessedImage(out, format, src.Width, src.Height)
	// Echo the caller's alias so "jpeg" requests report "jpeg".
	res.Format = strings.ToLower(strings.TrimSpace(spec.Format))
	return res, nil
}

func (e Engine) encodeOptions(format Format, quality *int) (EncodeOptions, error) {
	if quality != nil {
		if *quality < 1 || *quality > 100 {
			return EncodeOptions{}, newErrorf(ErrValidation, "convert", "quality %d outside 1-100", *quality)
		}
		return EncodeOptions{Quality: *quality}, nil
	}

	switch format {
	case JPEG:
		return EncodeOptions{Quality: e.JPEGQuality}, nil
	case WEBP:
		return EncodeOptions{Quality: e.WebPQuality}, nil
	}
	return EncodeOptions{}, nil
}
