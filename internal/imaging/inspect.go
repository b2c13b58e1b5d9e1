package imaging

// Inspect decodes an image and reports its metadata without transforming it.
//
// SizeBytes is the length of the payload after base64 decoding, not of any
// re-encoding. Format comes from the magic bytes and is "unknown" when the
// bytes decode but do not match a supported container (TIFF, for example).
func (e Engine) Inspect(data string) (*ImageInfo, error) {
	img, raw, format, err := e.decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &ImageInfo{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Format:     format.String(),
		SizeBytes:  len(raw),
		HasAlpha:   hasAlpha(img),
		ColorDepth: colorDepth(img),
	}, nil
}
