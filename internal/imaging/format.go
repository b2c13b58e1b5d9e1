package imaging

import (
	"strings"
)

// Format is one of the container formats the engine can write.
type Format int

// Supported formats. FormatUnknown is reported for inputs whose container
// could not be classified.
const (
	FormatUnknown Format = iota
	PNG
	JPEG
	WEBP
	BMP
	GIF
)

var formatNames = map[Format]string{
	FormatUnknown: "unknown",
	PNG:           "png",
	JPEG:          "jpg",
	WEBP:          "webp",
	BMP:           "bmp",
	GIF:           "gif",
}

var formatMimeTypes = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	WEBP: "image/webp",
	BMP:  "image/bmp",
	GIF:  "image/gif",
}

// String returns the short lowercase name used on the wire.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return formatNames[FormatUnknown]
}

// MimeType returns the IANA media type, or application/octet-stream for
// FormatUnknown.
func (f Format) MimeType() string {
	if mime, ok := formatMimeTypes[f]; ok {
		return mime
	}
	return "application/octet-stream"
}

// ParseFormat maps a user supplied format name to a Format.
//
// Matching is case-insensitive and ignores surrounding whitespace; "jpg" and
// "jpeg" are synonyms. Any other name fails with ErrUnsupportedFormat and the
// error message quotes the rejected string.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WEBP, nil
	case "bmp":
		return BMP, nil
	case "gif":
		return GIF, nil
	}
	return FormatUnknown, newErrorf(ErrUnsupportedFormat, "parse format", "%q is not one of png, jpeg, webp, bmp, gif", name)
}

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
	bmpSignature  = []byte("BM")
)

// Sniff identifies the container format from its magic bytes. Declared types
// and file names are never consulted.
func Sniff(data []byte) Format {
	switch {
	case hasPrefix(data, pngSignature):
		return PNG
	case hasPrefix(data, jpegSignature):
		return JPEG
	case len(data) >= 6 && string(data[:4]) == "GIF8" && (data[4] == '7' || data[4] == '9') && data[5] == 'a':
		return GIF
	case len(data) >= 12 && hasPrefix(data, riffSignature) && hasPrefix(data[8:], webpSignature):
		return WEBP
	case hasPrefix(data, bmpSignature):
		return BMP
	}
	return FormatUnknown
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
