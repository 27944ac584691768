// Package dds reads and writes the legacy DDS container as produced by the
// DirectX 7 era tooling this pipeline replaces: a 4-byte magic, a 124-byte
// DDSURFACEDESC2, then the mip chain top to bottom with no padding. Only the
// subset the pipeline needs is supported, which in practice means FourCC
// compressed surfaces with a full mip chain.
package dds

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/noxer/bytewriter"
)

// Magic is the little-endian "DDS " tag every container starts with.
const Magic uint32 = 0x20534444

// HeaderSize is the total size of the magic plus the surface descriptor.
const HeaderSize = 128

// FourCCDXT5 identifies BC3 compressed surface data.
const FourCCDXT5 uint32 = 0x35545844

// Surface descriptor flag bits. The writer always emits the legacy
// combination CAPS|HEIGHT|WIDTH|PIXELFORMAT|MIPMAPCOUNT.
const (
	flagCaps        = 0x00000001
	flagHeight      = 0x00000002
	flagWidth       = 0x00000004
	flagPixelFormat = 0x00001000
	flagMipMapCount = 0x00020000

	writerFlags = flagCaps | flagHeight | flagWidth | flagPixelFormat | flagMipMapCount

	pixelFormatFourCC = 0x00000004

	capsTexture = 0x00001000
	capsMipMap  = 0x00400000
)

// Header describes a compressed surface. It is the decoded view of the
// on-disk descriptor; fields the pipeline never sets are dropped.
type Header struct {
	Width       int
	Height      int
	MipMapCount int
	FourCC      uint32
}

// surfaceDesc mirrors DDSURFACEDESC2 byte for byte, 124 bytes little-endian.
// The lpSurface pointer and the four color keys are dead fields in a file
// but the layout keeps them, as did every writer of the era.
type surfaceDesc struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	AlphaBitDepth     uint32
	Reserved          uint32
	Surface           uint32
	ColorKeys         [8]uint32
	PixelFormat       pixelFormat
	Caps              [4]uint32
	TextureStage      uint32
}

// pixelFormat mirrors DDPIXELFORMAT, 32 bytes.
type pixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// WriteHeader serializes the container magic and surface descriptor. The mip
// chain payload follows directly; callers write it themselves.
//
// PitchOrLinearSize is left zero. The legacy consumers of these files derive
// surface sizes from the dimensions and never read the field, and the
// original tooling zeroed it too.
func WriteHeader(w io.Writer, hdr Header) error {
	if hdr.Width <= 0 || hdr.Height <= 0 {
		return fmt.Errorf("dds: invalid surface dimensions %dx%d", hdr.Width, hdr.Height)
	}
	if hdr.MipMapCount < 1 {
		return fmt.Errorf("dds: mip map count must be at least 1, got %d", hdr.MipMapCount)
	}

	desc := surfaceDesc{
		Size:        HeaderSize - 4,
		Flags:       writerFlags,
		Height:      uint32(hdr.Height),
		Width:       uint32(hdr.Width),
		MipMapCount: uint32(hdr.MipMapCount),
		PixelFormat: pixelFormat{
			Size:   32,
			Flags:  pixelFormatFourCC,
			FourCC: hdr.FourCC,
		},
		Caps: [4]uint32{capsTexture | capsMipMap, 0, 0, 0},
	}

	raw := make([]byte, HeaderSize)
	bw := bytewriter.New(raw)
	if err := binary.Write(bw, binary.LittleEndian, Magic); err != nil {
		return fmt.Errorf("dds: serializing header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, &desc); err != nil {
		return fmt.Errorf("dds: serializing header: %w", err)
	}

	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("dds: writing header: %w", err)
	}
	return nil
}

// Write serializes a complete container: header, then each mip level's raw
// surface data in order, top level first, with no padding between levels.
func Write(w io.Writer, width, height int, fourCC uint32, mips [][]byte) error {
	hdr := Header{
		Width:       width,
		Height:      height,
		MipMapCount: len(mips),
		FourCC:      fourCC,
	}
	if err := WriteHeader(w, hdr); err != nil {
		return err
	}
	for i, mip := range mips {
		if _, err := w.Write(mip); err != nil {
			return fmt.Errorf("dds: writing mip level %d: %w", i, err)
		}
	}
	return nil
}

// ReadHeader parses the container magic and surface descriptor, leaving the
// reader positioned at the first mip level.
func ReadHeader(r io.Reader) (Header, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Header{}, fmt.Errorf("dds: reading magic: %w", err)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("dds: bad magic 0x%08X", magic)
	}

	var desc surfaceDesc
	if err := binary.Read(r, binary.LittleEndian, &desc); err != nil {
		return Header{}, fmt.Errorf("dds: reading surface descriptor: %w", err)
	}
	if desc.Size != HeaderSize-4 {
		return Header{}, fmt.Errorf("dds: bad descriptor size %d", desc.Size)
	}
	if desc.PixelFormat.Flags&pixelFormatFourCC == 0 {
		return Header{}, fmt.Errorf("dds: surface is not FourCC compressed")
	}

	mips := int(desc.MipMapCount)
	if desc.Flags&flagMipMapCount == 0 || mips == 0 {
		mips = 1
	}
	return Header{
		Width:       int(desc.Width),
		Height:      int(desc.Height),
		MipMapCount: mips,
		FourCC:      desc.PixelFormat.FourCC,
	}, nil
}

// FourCCString renders a FourCC tag as text for display, one byte per
// character, low byte first.
func FourCCString(fourCC uint32) string {
	return string([]byte{
		byte(fourCC),
		byte(fourCC >> 8),
		byte(fourCC >> 16),
		byte(fourCC >> 24),
	})
}
