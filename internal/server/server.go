package server

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-backend/internal/imaging"
)

// DefaultMaxRequestBytes bounds a single request line unless overridden.
const DefaultMaxRequestBytes = 64 * 1024 * 1024

// Server dispatches image commands received as JSON-RPC requests
type Server struct {
	engine          imaging.Engine
	maxRequestBytes int
	version         string
	logger          zerolog.Logger

	// execute runs a named command; tests swap it to exercise failure paths.
	execute func(name string, args json.RawMessage) (interface{}, error)
}

// Option configures a Server
type Option func(*Server)

// WithMaxRequestBytes sets the longest accepted request line.
func WithMaxRequestBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRequestBytes = n
		}
	}
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// RPCRequest represents an incoming JSON-RPC request
type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// RPCResponse represents an outgoing JSON-RPC response
type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that runs commands on engine
func New(engine imaging.Engine, opts ...Option) *Server {
	s := &Server{
		engine:          engine,
		maxRequestBytes: DefaultMaxRequestBytes,
		version:         "dev",
		logger:          log.Logger,
	}
	s.execute = s.executeCommand
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves requests from stdin and writes responses to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w until r is exhausted. Requests are handled in order.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, s.maxRequestBytes)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req RPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn().Err(err).Msg("failed to parse request")
			if err := encoder.Encode(s.errorResponse(nil, codeParseError, "Parse error", err.Error())); err != nil {
				return errors.Wrap(err, "failed to encode response")
			}
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				return errors.Wrap(err, "failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scanner error")
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *RPCRequest) *RPCResponse {
	requestID := uuid.Must(uuid.NewV4()).String()
	logger := s.logger.With().Str("request_id", requestID).Str("method", req.Method).Logger()
	logger.Debug().Interface("id", req.ID).Msg("handling request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "commands/list":
		return s.handleCommandsList(req)
	case "commands/call":
		return s.handleCommandsCall(req, logger)
	case "ping":
		return &RPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		logger.Warn().Msg("method not found")
		return s.errorResponse(req.ID, codeMethodNotFound, "Method not found: "+req.Method, "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *RPCRequest) *RPCResponse {
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"commands": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "image-backend",
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *RPCResponse {
	rpcErr := &RPCError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		rpcErr.Data = data
	}
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   rpcErr,
	}
}
