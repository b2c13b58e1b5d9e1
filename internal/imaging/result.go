package imaging

// ProcessedImage is the uniform result of Crop, Resize, Convert and Compare.
type ProcessedImage struct {
	// Data is the encoded output. It marshals to standard base64 in JSON.
	Data []byte `json:"data"`

	// Format is the short name of the output container ("png", "jpg", ...).
	// Convert reports the requested name, so "jpeg" stays "jpeg".
	Format string `json:"format"`

	// MimeType is the media type of Data, suitable for a data URL.
	MimeType string `json:"mime_type"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// SizeBytes is len(Data), the size of the encoded payload before base64.
	SizeBytes int `json:"size_bytes"`
}

// ImageInfo describes an input image without transforming it.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the sniffed container, or "unknown" when the magic bytes do
	// not match a supported format even though a decoder accepted them.
	Format string `json:"format"`

	// SizeBytes is the length of the input payload as received, after base64
	// decoding.
	SizeBytes int `json:"size_bytes"`

	// HasAlpha is true when at least one pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`
}

func newProcessedImage(data []byte, format Format, width, height int) *ProcessedImage {
	return &ProcessedImage{
		Data:      data,
		Format:    format.String(),
		MimeType:  format.MimeType(),
		Width:     width,
		Height:    height,
		SizeBytes: len(data),
	}
}
