package server

// Command names, matching the desktop shell's invoke targets.
const (
	CommandCrop         = "crop_image_command"
	CommandResize       = "resize_image_command"
	CommandConvert      = "convert_image_command"
	CommandCompare      = "compare_images_command"
	CommandCompareStats = "compare_stats_command"
	CommandImageInfo    = "get_image_info_command"
)

// Command describes a callable command and its argument schema
type Command struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func base64Property(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":            "string",
		"contentEncoding": "base64",
		"description":     description,
	}
}

func integerProperty(description string, minimum int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     minimum,
		"description": description,
	}
}

// GetCommandDefinitions returns all available commands
func GetCommandDefinitions() []Command {
	return []Command{
		{
			Name:        CommandCrop,
			Description: "Cut an exact rectangle out of an image. The rectangle must lie inside the image. Returns PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base64_data": base64Property("Encoded source image"),
					"params": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":      integerProperty("Left edge (0-based)", 0),
							"y":      integerProperty("Top edge (0-based)", 0),
							"width":  integerProperty("Width in pixels", 1),
							"height": integerProperty("Height in pixels", 1),
						},
						"required": []string{"x", "y", "width", "height"},
					},
				},
				"required": []string{"base64_data", "params"},
			},
		},
		{
			Name:        CommandResize,
			Description: "Resample an image with a Lanczos filter. With maintain_aspect_ratio the result fits inside width x height. Returns PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base64_data": base64Property("Encoded source image"),
					"params": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"width":  integerProperty("Target width in pixels", 1),
							"height": integerProperty("Target height in pixels", 1),
							"maintain_aspect_ratio": map[string]interface{}{
								"type":        "boolean",
								"description": "Fit inside the target box keeping the source proportions",
							},
						},
						"required": []string{"width", "height", "maintain_aspect_ratio"},
					},
				},
				"required": []string{"base64_data", "params"},
			},
		},
		{
			Name:        CommandConvert,
			Description: "Re-encode an image as png, jpg/jpeg, webp, bmp or gif. Dimensions are unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base64_data": base64Property("Encoded source image"),
					"params": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"format": map[string]interface{}{
								"type":        "string",
								"description": "Target format name, case-insensitive",
								"examples":    []string{"png", "jpg", "jpeg", "webp", "bmp", "gif"},
							},
							"quality": map[string]interface{}{
								"type":        "integer",
								"minimum":     1,
								"maximum":     100,
								"description": "JPEG quality; makes WebP lossy. Ignored by other formats",
							},
						},
						"required": []string{"format"},
					},
				},
				"required": []string{"base64_data", "params"},
			},
		},
		{
			Name:        CommandCompare,
			Description: "Render a difference map of two images stretched to a common canvas. Small differences are amplified, large ones saturate. Returns PNG.",
			InputSchema: compareSchema(),
		},
		{
			Name:        CommandCompareStats,
			Description: "Summarize the difference between two images on the same canvas compare_images_command uses.",
			InputSchema: compareSchema(),
		},
		{
			Name:        CommandImageInfo,
			Description: "Report width, height, detected format and payload size of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base64_data": base64Property("Encoded image"),
				},
				"required": []string{"base64_data"},
			},
		},
	}
}

func compareSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"base64_data1": base64Property("First encoded image"),
			"base64_data2": base64Property("Second encoded image"),
		},
		"required": []string{"base64_data1", "base64_data2"},
	}
}

// handleCommandsList returns the list of available commands
func (s *Server) handleCommandsList(req *RPCRequest) *RPCResponse {
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"commands": GetCommandDefinitions(),
		},
	}
}
