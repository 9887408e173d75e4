package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"time"

	"github.com/ironsheep/raster-tools-mcp/internal/composite"
	"github.com/ironsheep/raster-tools-mcp/internal/crop"
	"github.com/ironsheep/raster-tools-mcp/internal/project"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/tiffio"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raster_load", "raster_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads rasters from cache as needed
//  4. Calls the appropriate raster/crop/composite function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Raster Information
	case "raster_load":
		return s.handleRasterLoad(args)
	case "raster_pixel":
		return s.handleRasterPixel(args)

	// Crop Operations
	case "raster_crop":
		return s.handleRasterCrop(args)
	case "raster_crop_info":
		return s.handleRasterCropInfo(args)

	// Display Composites
	case "raster_composite":
		return s.handleRasterComposite(args)
	case "raster_preview":
		return s.handleRasterPreview(args)

	// File Discovery
	case "raster_find_images":
		return s.handleRasterFindImages(args)

	// Project Bookkeeping
	case "project_create":
		return s.handleProjectCreate(args)
	case "project_open":
		return s.handleProjectOpen(args)
	case "project_info":
		return s.handleProjectInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// logActivity records a session activity when a session is open. Logging
// failures never fail the tool call; they go to stderr.
func (s *Server) logActivity(kind string, details map[string]any) {
	if s.session == nil {
		return
	}
	if err := s.session.Log(kind, details); err != nil {
		log.Printf("Failed to write session log: %v", err)
	}
}

// === Raster Information Handlers ===

type rasterLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleRasterLoad(args json.RawMessage) (interface{}, error) {
	var a rasterLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, kind, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	info, err := tiffio.InfoFor(a.Path, img, kind)
	if err != nil {
		return nil, err
	}

	if s.project != nil {
		if err := s.project.RecordSource(a.Path); err != nil {
			log.Printf("Failed to record source image: %v", err)
		}
	}
	s.logActivity("image_loaded", map[string]any{
		"path":  a.Path,
		"bands": img.Bands,
		"shape": fmt.Sprintf("%dx%d", img.Width, img.Height),
	})
	return info, nil
}

type rasterPixelArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Band *int   `json:"band"`
}

func (s *Server) handleRasterPixel(args json.RawMessage) (interface{}, error) {
	var a rasterPixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, _, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	values, err := img.PixelValues(a.X, a.Y)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"x": a.X,
		"y": a.Y,
	}
	if a.Band != nil {
		b := *a.Band
		if b < 0 || b >= img.Bands {
			return nil, fmt.Errorf("band index %d out of range for %d-band image", b, img.Bands)
		}
		result["band"] = b
		result["value"] = values[b]
	} else {
		result["values"] = values
	}
	return result, nil
}

// === Crop Operation Handlers ===

type rasterCropArgs struct {
	Path          string `json:"path"`
	CenterX       int    `json:"center_x"`
	CenterY       int    `json:"center_y"`
	Size          int    `json:"size"`
	PreserveBands *bool  `json:"preserve_bands"`
	OutputPath    string `json:"output_path"`
}

func (s *Server) handleRasterCrop(args json.RawMessage) (interface{}, error) {
	var a rasterCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size <= 0 {
		return nil, fmt.Errorf("crop size must be positive, got %d", a.Size)
	}
	preserve := true
	if a.PreserveBands != nil {
		preserve = *a.PreserveBands
	}

	img, _, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if !img.ValidCoords(a.CenterX, a.CenterY) {
		return nil, fmt.Errorf("crop center (%d, %d) outside %dx%d image",
			a.CenterX, a.CenterY, img.Width, img.Height)
	}

	out := a.OutputPath
	if out == "" {
		if s.project == nil {
			return nil, fmt.Errorf("no output_path given and no project open")
		}
		out = filepath.Join(s.project.CropsDir(), crop.OutputName(a.Path, a.CenterX, a.CenterY, a.Size))
	}

	cropped, res, err := crop.Square(img, a.CenterX, a.CenterY, a.Size, preserve)
	if err != nil {
		return nil, err
	}

	// Disk failures are a boundary condition, not a protocol error: log and
	// report success=false so the caller can retry with another path.
	if err := tiffio.Save(out, cropped); err != nil {
		log.Printf("Failed to save crop to %s: %v", out, err)
		return map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		}, nil
	}

	if s.project != nil {
		rec := project.CropRecord{
			Source:        a.Path,
			CenterX:       a.CenterX,
			CenterY:       a.CenterY,
			Size:          a.Size,
			PreserveBands: preserve,
			Path:          out,
			CreatedAt:     time.Now(),
		}
		if err := s.project.RecordCrop(rec); err != nil {
			log.Printf("Failed to record crop: %v", err)
		}
	}
	s.logActivity("crop_created", map[string]any{
		"source": a.Path,
		"output": out,
		"size":   a.Size,
	})

	return map[string]interface{}{
		"success":     true,
		"output_path": out,
		"bands":       cropped.Bands,
		"width":       cropped.Width,
		"height":      cropped.Height,
		"dtype":       cropped.DType.String(),
		"bounds":      res.Bounds,
		"adjusted":    res.Adjusted,
	}, nil
}

type rasterCropInfoArgs struct {
	Path    string `json:"path"`
	CenterX int    `json:"center_x"`
	CenterY int    `json:"center_y"`
	Size    int    `json:"size"`
}

func (s *Server) handleRasterCropInfo(args json.RawMessage) (interface{}, error) {
	var a rasterCropInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size <= 0 {
		return nil, fmt.Errorf("crop size must be positive, got %d", a.Size)
	}
	img, _, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return crop.PlanCrop(a.CenterX, a.CenterY, a.Size, img.Width, img.Height), nil
}

// === Display Composite Handlers ===

type rasterCompositeArgs struct {
	Path      string `json:"path"`
	Preset    string `json:"preset"`
	Bands     []int  `json:"bands"`
	Normalize *bool  `json:"normalize"`
	MaxSize   int    `json:"max_size"`
}

func (s *Server) handleRasterComposite(args json.RawMessage) (interface{}, error) {
	var a rasterCompositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = 400
	}
	normalize := true
	if a.Normalize != nil {
		normalize = *a.Normalize
	}

	img, _, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var triple composite.BandTriple
	presetName := ""
	switch {
	case len(a.Bands) == 3:
		triple = composite.BandTriple{a.Bands[0], a.Bands[1], a.Bands[2]}
	case len(a.Bands) != 0:
		return nil, fmt.Errorf("bands must list exactly 3 indices, got %d", len(a.Bands))
	case a.Preset != "":
		p, err := composite.ParsePreset(a.Preset)
		if err != nil {
			return nil, err
		}
		triple = p.Triple()
		presetName = p.String()
	default:
		triple = composite.NaturalColor.Triple()
		presetName = composite.NaturalColor.String()
	}

	comp, err := composite.Compose(img, triple, normalize)
	if err != nil {
		return nil, err
	}
	rgba, err := composite.RenderRGB(comp)
	if err != nil {
		return nil, err
	}
	scaled := composite.Thumbnail(rgba, a.MaxSize)

	encoded, err := encodePNGBase64(scaled)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"preset":       presetName,
		"bands":        []int{triple[0], triple[1], triple[2]},
		"normalized":   normalize,
		"width":        scaled.Bounds().Dx(),
		"height":       scaled.Bounds().Dy(),
		"format":       "png",
		"image_base64": encoded,
	}, nil
}

type rasterPreviewArgs struct {
	Path     string `json:"path"`
	Band     int    `json:"band"`
	Colormap bool   `json:"colormap"`
	MaxSize  int    `json:"max_size"`
}

func (s *Server) handleRasterPreview(args json.RawMessage) (interface{}, error) {
	var a rasterPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = 400
	}
	img, _, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Band < 0 || a.Band >= img.Bands {
		return nil, fmt.Errorf("band index %d out of range for %d-band image", a.Band, img.Bands)
	}

	band := raster.NormalizeBand(img.Band(a.Band))
	var rendered image.Image
	if a.Colormap {
		rendered = composite.RenderColormap(band)
	} else {
		rendered = composite.RenderGray(band)
	}
	scaled := composite.Thumbnail(rendered, a.MaxSize)

	encoded, err := encodePNGBase64(scaled)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"band":         a.Band,
		"colormap":     a.Colormap,
		"width":        scaled.Bounds().Dx(),
		"height":       scaled.Bounds().Dy(),
		"format":       "png",
		"image_base64": encoded,
	}, nil
}

// === File Discovery Handlers ===

type rasterFindImagesArgs struct {
	Directory string `json:"directory"`
}

func (s *Server) handleRasterFindImages(args json.RawMessage) (interface{}, error) {
	var a rasterFindImagesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	files, err := tiffio.FindImageFiles(a.Directory)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"directory": a.Directory,
		"count":     len(files),
		"files":     files,
	}, nil
}

// === Project Bookkeeping Handlers ===

type projectCreateArgs struct {
	BaseDir string `json:"base_dir"`
	Name    string `json:"name"`
}

func (s *Server) handleProjectCreate(args json.RawMessage) (interface{}, error) {
	var a projectCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	proj, err := project.Create(a.BaseDir, a.Name)
	if err != nil {
		return nil, err
	}
	return s.adoptProject(proj)
}

type projectOpenArgs struct {
	Dir string `json:"dir"`
}

func (s *Server) handleProjectOpen(args json.RawMessage) (interface{}, error) {
	var a projectOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	proj, err := project.Open(a.Dir)
	if err != nil {
		return nil, err
	}
	return s.adoptProject(proj)
}

// adoptProject makes proj the server's active project, starting a fresh
// session log and closing the previous one.
func (s *Server) adoptProject(proj *project.Project) (interface{}, error) {
	session, err := project.NewSession(proj.Dir)
	if err != nil {
		return nil, err
	}

	if s.session != nil {
		if err := s.session.Close(); err != nil {
			log.Printf("Failed to close previous session log: %v", err)
		}
	}
	s.project = proj
	s.session = session

	return map[string]interface{}{
		"name":          proj.Meta.Name,
		"dir":           proj.Dir,
		"images_dir":    proj.ImagesDir(),
		"crops_dir":     proj.CropsDir(),
		"source_images": len(proj.Meta.SourceImages),
		"crops":         len(proj.Meta.Crops),
		"session_log":   session.Path(),
	}, nil
}

func (s *Server) handleProjectInfo(args json.RawMessage) (interface{}, error) {
	if s.project == nil {
		return nil, fmt.Errorf("no project open")
	}
	result := map[string]interface{}{
		"dir":      s.project.Dir,
		"metadata": s.project.Meta,
	}
	if s.session != nil {
		result["session_log"] = s.session.Path()
		result["statistics"] = s.session.Stats()
	}
	return result, nil
}

// encodePNGBase64 encodes an image as PNG and returns it base64-encoded for
// embedding in a tool result.
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
