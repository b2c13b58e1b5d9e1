// Package server exposes the image transform engine to a desktop shell as a
// JSON-RPC 2.0 service over stdio.
//
// # Protocol
//
// The server reads one request per line and writes one response per line:
//   - Input: JSON-RPC requests on stdin
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog output on stderr
//
// Supported methods:
//   - initialize: handshake, reports protocol version and server info
//   - commands/list: enumerate commands with their argument schemas
//   - commands/call: run a command with {"name": ..., "arguments": ...}
//   - ping: health check
//
// # Commands
//
//   - crop_image_command: {base64_data, params: {x, y, width, height}}
//   - resize_image_command: {base64_data, params: {width, height, maintain_aspect_ratio}}
//   - convert_image_command: {base64_data, params: {format, quality?}}
//   - compare_images_command: {base64_data1, base64_data2}
//   - compare_stats_command: {base64_data1, base64_data2}
//   - get_image_info_command: {base64_data}
//
// Transform commands return a ProcessedImage whose data field is base64.
//
// # Error Handling
//
// Command failures are returned as JSON-RPC errors with message
// "Command failed" and the error text in data. The code names the kind:
//   - -32001: the payload could not be decoded
//   - -32002: parameters are invalid for the image
//   - -32003: the target format is not supported
//   - -32004: the encoder failed
//   - -32005: the difference buffer could not be built
//
// Malformed arguments and unknown commands yield -32602.
//
// # Usage
//
//	srv := server.New(cfg.Engine(), server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server exited")
//	}
//
// Requests are handled sequentially and the engine keeps no state between
// them.
package server
