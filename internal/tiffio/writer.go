package tiffio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// TIFF tag and field-type constants, little-endian baseline subset.
const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279
	tagPlanarConfig    = 284
	tagSampleFormat    = 339

	typeByte  = 1
	typeShort = 3
	typeLong  = 4

	compressionNone      = 1
	photometricBlackZero = 1

	sampleFormatUint  = 1
	sampleFormatFloat = 3
)

// One IFD per band: 10 entries, entry count, next-IFD pointer.
const (
	ifdEntryCount = 10
	ifdSize       = 2 + ifdEntryCount*12 + 4
	headerSize    = 8
)

// Encode writes a band-major raster as a little-endian multi-page TIFF:
// one uncompressed grayscale page per band, in band order, single strip per
// page. Sample width follows the raster's element type.
func Encode(w io.Writer, img *raster.Image) error {
	bandBytes := img.Height * img.Width * img.DType.Size()
	ifdStart := headerSize + img.Bands*bandBytes

	buf := make([]byte, 0, ifdStart+img.Bands*ifdSize)

	// Header: byte order, magic, offset of the first IFD.
	buf = append(buf, 'I', 'I', 0x2A, 0x00)
	buf = appendUint32(buf, uint32(ifdStart))

	// Pixel data, one strip per band.
	for c := 0; c < img.Bands; c++ {
		buf = appendSamples(buf, img.Band(c).Pix, img.DType)
	}

	// IFD chain.
	format := uint16(sampleFormatUint)
	if img.DType == raster.Float32 || img.DType == raster.Float64 {
		format = sampleFormatFloat
	}
	for c := 0; c < img.Bands; c++ {
		next := uint32(0)
		if c+1 < img.Bands {
			next = uint32(ifdStart + (c+1)*ifdSize)
		}
		buf = appendIFD(buf, ifdFields{
			width:       uint32(img.Width),
			height:      uint32(img.Height),
			bits:        uint16(img.DType.Size() * 8),
			stripOffset: uint32(headerSize + c*bandBytes),
			stripBytes:  uint32(bandBytes),
			format:      format,
			next:        next,
		})
	}

	_, err := w.Write(buf)
	return err
}

type ifdFields struct {
	width, height uint32
	bits          uint16
	stripOffset   uint32
	stripBytes    uint32
	format        uint16
	next          uint32
}

// appendIFD emits one image file directory. Entries must stay sorted by tag.
func appendIFD(buf []byte, f ifdFields) []byte {
	buf = appendUint16(buf, ifdEntryCount)
	buf = appendEntry(buf, tagImageWidth, typeLong, f.width)
	buf = appendEntry(buf, tagImageLength, typeLong, f.height)
	buf = appendEntry(buf, tagBitsPerSample, typeShort, uint32(f.bits))
	buf = appendEntry(buf, tagCompression, typeShort, compressionNone)
	buf = appendEntry(buf, tagPhotometric, typeShort, photometricBlackZero)
	buf = appendEntry(buf, tagStripOffsets, typeLong, f.stripOffset)
	buf = appendEntry(buf, tagSamplesPerPixel, typeShort, 1)
	buf = appendEntry(buf, tagRowsPerStrip, typeLong, f.height)
	buf = appendEntry(buf, tagStripByteCounts, typeLong, f.stripBytes)
	buf = appendEntry(buf, tagSampleFormat, typeShort, uint32(f.format))
	return appendUint32(buf, f.next)
}

func appendEntry(buf []byte, tag, fieldType uint16, value uint32) []byte {
	buf = appendUint16(buf, tag)
	buf = appendUint16(buf, fieldType)
	buf = appendUint32(buf, 1)
	if fieldType == typeShort {
		// Short values sit left-justified in the 4-byte field.
		buf = appendUint16(buf, uint16(value))
		return appendUint16(buf, 0)
	}
	return appendUint32(buf, value)
}

func appendSamples(buf []byte, pix []float64, dtype raster.DType) []byte {
	switch dtype {
	case raster.Uint8:
		for _, v := range pix {
			buf = append(buf, uint8(v))
		}
	case raster.Uint16:
		for _, v := range pix {
			buf = appendUint16(buf, uint16(v))
		}
	case raster.Float32:
		for _, v := range pix {
			buf = appendUint32(buf, math.Float32bits(float32(v)))
		}
	default:
		for _, v := range pix {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return buf
}

func appendUint16(buf []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(buf, v)
}

func appendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}
