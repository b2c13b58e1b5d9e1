package server

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-backend/internal/imaging"
)

// ProtocolVersion is reported by initialize.
const ProtocolVersion = "2025-01-01"

// JSON-RPC error codes. The -3200x range carries the engine's error kinds so
// callers can branch without parsing messages.
const (
	codeParseError        = -32700
	codeMethodNotFound    = -32601
	codeInvalidParams     = -32602
	codeCommandFailed     = -32000
	codeDecodeError       = -32001
	codeValidationError   = -32002
	codeUnsupportedFormat = -32003
	codeEncodeError       = -32004
	codeBufferError       = -32005
)

// CommandCallParams represents the parameters for a commands/call request.
type CommandCallParams struct {
	// Name is the command to invoke (e.g., "crop_image_command").
	Name string `json:"name"`

	// Arguments contains the command-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleCommandsCall processes a commands/call request and executes the named command.
//
// A successful call returns the command result object directly as the
// JSON-RPC result. Command failures return an error response whose code
// identifies the failure kind and whose data is the human-readable message.
func (s *Server) handleCommandsCall(req *RPCRequest, logger zerolog.Logger) (resp *RPCResponse) {
	var params CommandCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	logger = logger.With().Str("command", params.Name).Logger()

	// A panicking command fails alone; the sidecar keeps serving.
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("command panicked")
			resp = s.errorResponse(req.ID, codeCommandFailed, "Command failed", errors.Errorf("internal error: %v", r).Error())
		}
	}()

	result, err := s.execute(params.Name, params.Arguments)
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			logger.Warn().Err(err).Msg("invalid command arguments")
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		logger.Warn().Err(err).Msg("command failed")
		return s.errorResponse(req.ID, errorCode(err), "Command failed", err.Error())
	}

	logger.Debug().Msg("command succeeded")
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// errorCode maps an engine error to its JSON-RPC code.
func errorCode(err error) int {
	switch imaging.KindOf(err) {
	case imaging.ErrDecode:
		return codeDecodeError
	case imaging.ErrValidation:
		return codeValidationError
	case imaging.ErrUnsupportedFormat:
		return codeUnsupportedFormat
	case imaging.ErrEncode:
		return codeEncodeError
	case imaging.ErrBufferConstruction:
		return codeBufferError
	}
	return codeCommandFailed
}

// argumentError marks arguments that could not be unmarshaled.
type argumentError struct {
	err error
}

func (e *argumentError) Error() string { return e.err.Error() }
func (e *argumentError) Unwrap() error { return e.err }

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return &argumentError{err: errors.New("missing arguments")}
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argumentError{err: err}
	}
	return nil
}

// executeCommand dispatches command execution to the appropriate handler function.
func (s *Server) executeCommand(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case CommandCrop:
		return s.handleCrop(args)
	case CommandResize:
		return s.handleResize(args)
	case CommandConvert:
		return s.handleConvert(args)
	case CommandCompare:
		return s.handleCompare(args)
	case CommandCompareStats:
		return s.handleCompareStats(args)
	case CommandImageInfo:
		return s.handleImageInfo(args)
	default:
		return nil, &argumentError{err: errors.Errorf("unknown command: %s", name)}
	}
}

type cropArgs struct {
	Base64Data string           `json:"base64_data"`
	Params     imaging.CropSpec `json:"params"`
}

func (s *Server) handleCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Crop(a.Base64Data, a.Params)
}

type resizeArgs struct {
	Base64Data string             `json:"base64_data"`
	Params     imaging.ResizeSpec `json:"params"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Resize(a.Base64Data, a.Params)
}

type convertArgs struct {
	Base64Data string              `json:"base64_data"`
	Params     imaging.ConvertSpec `json:"params"`
}

func (s *Server) handleConvert(args json.RawMessage) (interface{}, error) {
	var a convertArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Convert(a.Base64Data, a.Params)
}

type compareArgs struct {
	Base64Data1 string `json:"base64_data1"`
	Base64Data2 string `json:"base64_data2"`
}

func (s *Server) handleCompare(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Compare(a.Base64Data1, a.Base64Data2)
}

func (s *Server) handleCompareStats(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.CompareStats(a.Base64Data1, a.Base64Data2)
}

type imageInfoArgs struct {
	Base64Data string `json:"base64_data"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.engine.Inspect(a.Base64Data)
}
