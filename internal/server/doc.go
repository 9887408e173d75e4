// Package server implements the MCP (Model Context Protocol) server for
// multispectral raster tools.
//
// This package provides a JSON-RPC 2.0 server that exposes raster cropping
// and visualization capabilities through the MCP protocol. It's designed to
// work with Claude and other MCP-compatible clients, enabling AI systems to
// work with multi-band imagery that common image formats cannot carry.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Raster Information:
//   - raster_load: Load a raster and get shape, dtype and statistics
//   - raster_pixel: Sample values at a pixel coordinate
//
// Crop Operations:
//   - raster_crop: Extract a square crop and write a multi-band TIFF
//   - raster_crop_info: Explain how a crop request would resolve
//
// Display Composites:
//   - raster_composite: Render an RGB composite from a band triple
//   - raster_preview: Render a single band as grayscale or false color
//
// File Discovery:
//   - raster_find_images: List supported raster files in a directory
//
// Project Bookkeeping:
//   - project_create: Create and open a labeling project directory
//   - project_open: Reopen an existing project directory
//   - project_info: Report project metadata and session statistics
//
// # Raster Caching
//
// The server maintains an in-memory cache of loaded rasters. Rasters are
// cached by path and reused across multiple tool calls, avoiding redundant
// disk I/O. The cache persists for the lifetime of the server process.
package server
