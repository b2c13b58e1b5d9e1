// Package imaging implements the pixel transform and comparison engine of the
// image backend.
//
// Every operation takes base64-encoded image bytes, decodes them by content,
// applies one deterministic transform and re-encodes the result. Operations
// are stateless: buffers are allocated per call and nothing is cached, so any
// number of calls may run concurrently.
//
// # Operations
//
//   - Crop: exact pixel copy of a rectangle, PNG output
//   - Resize: Lanczos-3 resampling with optional aspect lock, PNG output
//   - Convert: re-encode to PNG, JPEG, WebP, BMP or GIF
//   - Compare: enhanced per-channel difference map on a common canvas, PNG output
//   - CompareStats: numeric summary of the same difference
//   - Inspect: dimensions, sniffed format and payload size
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner.
// A CropSpec selects columns [X, X+Width) and rows [Y, Y+Height).
//
// # Pixel Layout
//
// Decoded images are held in a Raster: a flat row-major buffer with 3 (RGB)
// or 4 (non-premultiplied RGBA) bytes per pixel. Crop, Resize and Convert keep
// alpha; Compare discards it before differencing.
//
// # Error Handling
//
// Failures are reported as *Error values whose kind matches one of
// ErrDecode, ErrValidation, ErrUnsupportedFormat, ErrEncode or
// ErrBufferConstruction through errors.Is. The message names the stage that
// failed. No operation returns a partial result.
package imaging
