package tiffio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

const (
	photometricWhiteZero = 0
	photometricRGB       = 2

	planarChunky = 1
)

var errNotTIFF = errors.New("not a TIFF file")

// page is one decoded IFD: dimensions, per-pixel sample count and samples
// in row-major order (interleaved when samplesPerPixel > 1).
type page struct {
	width, height   int
	samplesPerPixel int
	dtype           raster.DType
	samples         []float64
}

// Decode parses a baseline uncompressed TIFF into a band-major raster.
//
// Supported layouts:
//   - multi-page grayscale (the format Encode writes): pages become bands;
//   - single-page grayscale: a single-band raster;
//   - single-page chunky multi-sample (RGB or band-interleaved): handed to
//     the raster layout heuristic, which transposes (H, W, bands) inputs.
//
// Compressed or planar TIFFs are rejected; Load falls back to
// golang.org/x/image/tiff for those.
func Decode(data []byte) (*raster.Image, error) {
	bo, ifdOffset, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	var pages []page
	for ifdOffset != 0 {
		p, next, err := decodePage(data, bo, ifdOffset)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
		ifdOffset = next
	}
	if len(pages) == 0 {
		return nil, errors.New("tiff: no image directories")
	}

	first := pages[0]
	if len(pages) == 1 {
		if first.samplesPerPixel == 1 {
			return raster.FromAxes(first.dtype, []int{first.height, first.width}, first.samples)
		}
		return raster.FromAxes(first.dtype,
			[]int{first.height, first.width, first.samplesPerPixel}, first.samples)
	}

	// Multi-page: every page is one band and all pages must agree. The
	// layout is band-major by construction, so the axis heuristic does not
	// apply here.
	pix := make([]float64, 0, len(pages)*first.height*first.width)
	for i, p := range pages {
		if p.samplesPerPixel != 1 {
			return nil, fmt.Errorf("tiff: multi-page image with %d samples per pixel on page %d", p.samplesPerPixel, i)
		}
		if p.width != first.width || p.height != first.height || p.dtype != first.dtype {
			return nil, fmt.Errorf("tiff: page %d shape/dtype differs from page 0", i)
		}
		pix = append(pix, p.samples...)
	}
	return &raster.Image{
		DType:  first.dtype,
		Bands:  len(pages),
		Height: first.height,
		Width:  first.width,
		Pix:    pix,
	}, nil
}

func decodeHeader(data []byte) (binary.ByteOrder, int, error) {
	const (
		leHeader = "II\x2A\x00" // little-endian magic
		beHeader = "MM\x00\x2A" // big-endian magic
	)
	if len(data) < 8 {
		return nil, 0, errNotTIFF
	}
	var bo binary.ByteOrder
	switch string(data[0:4]) {
	case leHeader:
		bo = binary.LittleEndian
	case beHeader:
		bo = binary.BigEndian
	default:
		return nil, 0, errNotTIFF
	}
	return bo, int(bo.Uint32(data[4:8])), nil
}

// ifdEntry is one raw directory entry; value holds the 4-byte value/offset
// field before interpretation.
type ifdEntry struct {
	fieldType uint16
	count     uint32
	value     [4]byte
}

func decodePage(data []byte, bo binary.ByteOrder, offset int) (page, int, error) {
	var empty page
	if offset+2 > len(data) {
		return empty, 0, errors.New("tiff: IFD offset out of range")
	}
	n := int(bo.Uint16(data[offset : offset+2]))
	end := offset + 2 + n*12
	if end+4 > len(data) {
		return empty, 0, errors.New("tiff: truncated IFD")
	}

	entries := make(map[uint16]ifdEntry, n)
	for i := 0; i < n; i++ {
		e := data[offset+2+i*12 : offset+2+(i+1)*12]
		entry := ifdEntry{
			fieldType: bo.Uint16(e[2:4]),
			count:     bo.Uint32(e[4:8]),
		}
		copy(entry.value[:], e[8:12])
		entries[bo.Uint16(e[0:2])] = entry
	}
	next := int(bo.Uint32(data[end : end+4]))

	width, err := requiredScalar(entries, tagImageWidth, bo)
	if err != nil {
		return empty, 0, err
	}
	height, err := requiredScalar(entries, tagImageLength, bo)
	if err != nil {
		return empty, 0, err
	}

	if v := scalarOr(entries, tagCompression, bo, compressionNone); v != compressionNone {
		return empty, 0, fmt.Errorf("tiff: unsupported compression %d", v)
	}
	photometric := scalarOr(entries, tagPhotometric, bo, photometricBlackZero)
	switch photometric {
	case photometricWhiteZero, photometricBlackZero, photometricRGB:
	default:
		return empty, 0, fmt.Errorf("tiff: unsupported photometric interpretation %d", photometric)
	}
	if v := scalarOr(entries, tagPlanarConfig, bo, planarChunky); v != planarChunky {
		return empty, 0, fmt.Errorf("tiff: unsupported planar configuration %d", v)
	}

	spp := int(scalarOr(entries, tagSamplesPerPixel, bo, 1))
	bits, err := integerValues(entries, tagBitsPerSample, bo, data)
	if err != nil || len(bits) == 0 {
		return empty, 0, errors.New("tiff: missing BitsPerSample")
	}
	for _, b := range bits {
		if b != bits[0] {
			return empty, 0, errors.New("tiff: mixed per-sample bit depths")
		}
	}
	format := scalarOr(entries, tagSampleFormat, bo, sampleFormatUint)

	dtype, err := dtypeFor(int(bits[0]), int(format))
	if err != nil {
		return empty, 0, err
	}

	stripOffsets, err := integerValues(entries, tagStripOffsets, bo, data)
	if err != nil {
		return empty, 0, errors.New("tiff: missing StripOffsets")
	}
	stripCounts, err := integerValues(entries, tagStripByteCounts, bo, data)
	if err != nil || len(stripCounts) != len(stripOffsets) {
		return empty, 0, errors.New("tiff: missing or mismatched StripByteCounts")
	}

	want := int(width) * int(height) * spp * dtype.Size()
	raw := make([]byte, 0, want)
	for i, so := range stripOffsets {
		lo, hi := int(so), int(so)+int(stripCounts[i])
		if lo < 0 || hi > len(data) {
			return empty, 0, errors.New("tiff: strip outside file")
		}
		raw = append(raw, data[lo:hi]...)
	}
	if len(raw) < want {
		return empty, 0, fmt.Errorf("tiff: pixel data truncated: %d of %d bytes", len(raw), want)
	}

	samples := decodeSamples(raw[:want], dtype, bo)
	if photometric == photometricWhiteZero {
		invertSamples(samples, dtype)
	}

	return page{
		width:           int(width),
		height:          int(height),
		samplesPerPixel: spp,
		dtype:           dtype,
		samples:         samples,
	}, next, nil
}

func dtypeFor(bits, format int) (raster.DType, error) {
	switch {
	case bits == 8 && format == sampleFormatUint:
		return raster.Uint8, nil
	case bits == 16 && format == sampleFormatUint:
		return raster.Uint16, nil
	case bits == 32 && format == sampleFormatFloat:
		return raster.Float32, nil
	case bits == 64 && format == sampleFormatFloat:
		return raster.Float64, nil
	default:
		return 0, fmt.Errorf("tiff: unsupported sample type: %d bits, format %d", bits, format)
	}
}

func decodeSamples(raw []byte, dtype raster.DType, bo binary.ByteOrder) []float64 {
	n := len(raw) / dtype.Size()
	out := make([]float64, n)
	switch dtype {
	case raster.Uint8:
		for i := range out {
			out[i] = float64(raw[i])
		}
	case raster.Uint16:
		for i := range out {
			out[i] = float64(bo.Uint16(raw[i*2:]))
		}
	case raster.Float32:
		for i := range out {
			out[i] = float64(math.Float32frombits(bo.Uint32(raw[i*4:])))
		}
	default:
		for i := range out {
			out[i] = math.Float64frombits(bo.Uint64(raw[i*8:]))
		}
	}
	return out
}

// invertSamples maps white-is-zero grayscale onto the black-is-zero scale
// the rest of the system assumes. Only meaningful for integer types.
func invertSamples(samples []float64, dtype raster.DType) {
	var maxVal float64
	switch dtype {
	case raster.Uint8:
		maxVal = 255
	case raster.Uint16:
		maxVal = 65535
	default:
		return
	}
	for i, v := range samples {
		samples[i] = maxVal - v
	}
}

func fieldTypeSize(fieldType uint16) int {
	switch fieldType {
	case typeByte:
		return 1
	case typeShort:
		return 2
	case typeLong:
		return 4
	default:
		return 0
	}
}

// integerValues reads an entry's values as unsigned integers, following the
// value/offset field to its external location when the data does not fit in
// 4 bytes.
func integerValues(entries map[uint16]ifdEntry, tag uint16, bo binary.ByteOrder, data []byte) ([]uint32, error) {
	e, ok := entries[tag]
	if !ok {
		return nil, fmt.Errorf("tiff: missing tag %d", tag)
	}
	size := fieldTypeSize(e.fieldType)
	if size == 0 {
		return nil, fmt.Errorf("tiff: tag %d has unsupported field type %d", tag, e.fieldType)
	}

	total := int(e.count) * size
	var raw []byte
	if total <= 4 {
		raw = e.value[:total]
	} else {
		off := int(bo.Uint32(e.value[:]))
		if off < 0 || off+total > len(data) {
			return nil, fmt.Errorf("tiff: tag %d values outside file", tag)
		}
		raw = data[off : off+total]
	}

	out := make([]uint32, e.count)
	for i := range out {
		switch e.fieldType {
		case typeByte:
			out[i] = uint32(raw[i])
		case typeShort:
			out[i] = uint32(bo.Uint16(raw[i*2:]))
		default:
			out[i] = bo.Uint32(raw[i*4:])
		}
	}
	return out, nil
}

func requiredScalar(entries map[uint16]ifdEntry, tag uint16, bo binary.ByteOrder) (uint32, error) {
	e, ok := entries[tag]
	if !ok {
		return 0, fmt.Errorf("tiff: missing tag %d", tag)
	}
	return scalarValue(e, bo), nil
}

func scalarOr(entries map[uint16]ifdEntry, tag uint16, bo binary.ByteOrder, def uint32) uint32 {
	e, ok := entries[tag]
	if !ok {
		return def
	}
	return scalarValue(e, bo)
}

func scalarValue(e ifdEntry, bo binary.ByteOrder) uint32 {
	if e.fieldType == typeShort {
		return uint32(bo.Uint16(e.value[:2]))
	}
	if e.fieldType == typeByte {
		return uint32(e.value[0])
	}
	return bo.Uint32(e.value[:])
}
