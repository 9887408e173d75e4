package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Raster Information
		{
			Name:        "raster_load",
			Description: "Load a raster file (multi-band TIFF, PNG or JPEG) and return its shape, element type and value statistics. The raster is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the raster file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_pixel",
			Description: "Get the sample values at a pixel coordinate, for one band or all bands.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the raster file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"band": map[string]interface{}{
						"type":        "integer",
						"description": "Optional band index. If omitted, values for all bands are returned.",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Crop Operations
		{
			Name:        "raster_crop",
			Description: "Extract a square crop centered on a pixel coordinate and write it as a multi-band TIFF. Bounds are clamped and shift-adjusted so crops near an edge still come out full size whenever the image is large enough.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source raster",
					},
					"center_x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate of the crop center (must be inside the image)",
					},
					"center_y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate of the crop center (must be inside the image)",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side length of the square crop in pixels",
					},
					"preserve_bands": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep all bands (default true). When false, only the first 3 bands are kept.",
						"default":     true,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Destination TIFF path. Defaults to the crops directory of the open project using the conventional crop filename.",
					},
				},
				"required": []string{"path", "center_x", "center_y", "size"},
			},
		},
		{
			Name:        "raster_crop_info",
			Description: "Report how a crop request would resolve (naive bounds, adjusted bounds, feasibility) without executing it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source raster",
					},
					"center_x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate of the crop center",
					},
					"center_y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate of the crop center",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side length of the square crop in pixels",
					},
				},
				"required": []string{"path", "center_x", "center_y", "size"},
			},
		},

		// Display Composites
		{
			Name:        "raster_composite",
			Description: "Build an RGB display composite from a band triple and return it as base64-encoded PNG. Accepts a named preset (natural, false_color_ir, red_edge, ndvi_like) or explicit band indices.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source raster",
					},
					"preset": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"natural", "false_color_ir", "red_edge", "ndvi_like"},
						"description": "Named band triple for 5-band imagery. Ignored when 'bands' is given.",
					},
					"bands": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Explicit [r, g, b] source band indices.",
					},
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Percentile-normalize each channel independently (default true). Raw values are clipped for display when false.",
						"default":     true,
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest edge of the returned preview in pixels. Default 400.",
						"default":     400,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_preview",
			Description: "Render a single band as a normalized grayscale or false-color PNG preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source raster",
					},
					"band": map[string]interface{}{
						"type":        "integer",
						"description": "Band index to render (default 0)",
						"default":     0,
					},
					"colormap": map[string]interface{}{
						"type":        "boolean",
						"description": "Render through the false-color ramp instead of grayscale",
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest edge of the returned preview in pixels. Default 400.",
						"default":     400,
					},
				},
				"required": []string{"path"},
			},
		},

		// File Discovery
		{
			Name:        "raster_find_images",
			Description: "List the supported raster files (TIFF, PNG, JPEG) in a directory, sorted by name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to scan (not recursive)",
					},
				},
				"required": []string{"directory"},
			},
		},

		// Project Bookkeeping
		{
			Name:        "project_create",
			Description: "Create a labeling project directory (images/, crops/, metadata) and open it for subsequent crops. Starts a session activity log.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory the project is created under",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Project name. Auto-generated from the timestamp if omitted.",
					},
				},
				"required": []string{"base_dir"},
			},
		},
		{
			Name:        "project_open",
			Description: "Open an existing labeling project directory for subsequent crops. Starts a fresh session activity log.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Project directory (the one containing project_metadata.json)",
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "project_info",
			Description: "Return the open project's metadata and current session statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
