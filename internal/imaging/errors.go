package imaging

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is.
var (
	// ErrDecode is returned when input bytes are not a decodable image.
	ErrDecode = errors.New("decode error")

	// ErrValidation is returned when requested geometry or parameters are invalid
	// for the source image.
	ErrValidation = errors.New("validation error")

	// ErrUnsupportedFormat is returned for target format names outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEncode is returned when a pixel grid cannot be serialized.
	ErrEncode = errors.New("encode error")

	// ErrBufferConstruction is returned when a computed pixel buffer does not
	// match its declared dimensions.
	ErrBufferConstruction = errors.New("buffer construction error")
)

// Error describes a failed operation stage.
//
// Kind is one of the package sentinels, Stage names the step that failed
// (for example "decode" or "encode png") and Err carries the underlying cause,
// which may be nil when the stage itself detected the problem.
type Error struct {
	Kind  error
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, stage string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: cause}
}

func newErrorf(kind error, stage, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Stage: stage, Err: errors.Errorf(format, args...)}
}

// KindOf returns the sentinel kind of err, or nil if err did not originate
// from this package.
func KindOf(err error) error {
	for _, kind := range []error{ErrDecode, ErrValidation, ErrUnsupportedFormat, ErrEncode, ErrBufferConstruction} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
