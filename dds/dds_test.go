package dds_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iOrange/bumpx/dds"
	bumpxtesting "github.com/iOrange/bumpx/testing"
)

func u32At(t *testing.T, raw []byte, offset int) uint32 {
	t.Helper()
	require.GreaterOrEqual(t, len(raw), offset+4)
	return binary.LittleEndian.Uint32(raw[offset : offset+4])
}

func TestWriteHeaderGoldenLayout(t *testing.T) {
	var buf bytes.Buffer
	err := dds.WriteHeader(&buf, dds.Header{
		Width:       256,
		Height:      128,
		MipMapCount: 8,
		FourCC:      dds.FourCCDXT5,
	})
	require.NoError(t, err)

	raw := buf.Bytes()
	require.Len(t, raw, dds.HeaderSize)

	assert.Equal(t, []byte("DDS "), raw[0:4])
	assert.EqualValues(t, 124, u32At(t, raw, 4), "descriptor size")
	assert.EqualValues(t, 0x00021007, u32At(t, raw, 8), "descriptor flags")
	assert.EqualValues(t, 128, u32At(t, raw, 12), "height")
	assert.EqualValues(t, 256, u32At(t, raw, 16), "width")
	assert.EqualValues(t, 0, u32At(t, raw, 20), "pitch/linear size stays zero")
	assert.EqualValues(t, 0, u32At(t, raw, 24), "depth")
	assert.EqualValues(t, 8, u32At(t, raw, 28), "mip map count")
	assert.EqualValues(t, 32, u32At(t, raw, 76), "pixel format size")
	assert.EqualValues(t, 0x00000004, u32At(t, raw, 80), "pixel format flags")
	assert.Equal(t, []byte("DXT5"), raw[84:88])
	assert.EqualValues(t, 0x00401000, u32At(t, raw, 108), "caps")
}

func TestWriteHeaderRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	err := dds.WriteHeader(&buf, dds.Header{Width: 0, Height: 16, MipMapCount: 1})
	assert.Error(t, err)

	err = dds.WriteHeader(&buf, dds.Header{Width: 16, Height: 16, MipMapCount: 0})
	assert.Error(t, err)
}

func TestWriteHeaderPropagatesWriteErrors(t *testing.T) {
	short := bytewriter.New(make([]byte, 64))
	err := dds.WriteHeader(short, dds.Header{
		Width: 16, Height: 16, MipMapCount: 1, FourCC: dds.FourCCDXT5,
	})
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	mips := [][]byte{
		bytes.Repeat([]byte{0xAB}, 64),
		bytes.Repeat([]byte{0xCD}, 16),
		bytes.Repeat([]byte{0xEF}, 16),
	}

	var buf bytes.Buffer
	require.NoError(t, dds.Write(&buf, 16, 16, dds.FourCCDXT5, mips))
	require.Len(t, buf.Bytes(), dds.HeaderSize+64+16+16)

	stream := bumpxtesting.ContainerStream(t, buf.Bytes())
	hdr, err := dds.ReadHeader(stream)
	require.NoError(t, err)
	assert.Equal(t, dds.Header{
		Width: 16, Height: 16, MipMapCount: 3, FourCC: dds.FourCCDXT5,
	}, hdr)

	payload, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, bytes.Join(mips, nil), payload,
		"mip levels must follow the header contiguously")
}

func TestReadHeaderRejectsMalformedInput(t *testing.T) {
	valid := func(t *testing.T) []byte {
		var buf bytes.Buffer
		require.NoError(t, dds.WriteHeader(&buf, dds.Header{
			Width: 16, Height: 16, MipMapCount: 1, FourCC: dds.FourCCDXT5,
		}))
		return buf.Bytes()
	}

	t.Run("BadMagic", func(t *testing.T) {
		raw := valid(t)
		raw[0] = 'X'
		_, err := dds.ReadHeader(bytes.NewReader(raw))
		assert.Error(t, err)
	})

	t.Run("Truncated", func(t *testing.T) {
		raw := valid(t)
		_, err := dds.ReadHeader(bytes.NewReader(raw[:40]))
		assert.Error(t, err)
	})

	t.Run("BadDescriptorSize", func(t *testing.T) {
		raw := valid(t)
		binary.LittleEndian.PutUint32(raw[4:8], 96)
		_, err := dds.ReadHeader(bytes.NewReader(raw))
		assert.Error(t, err)
	})

	t.Run("NotFourCC", func(t *testing.T) {
		raw := valid(t)
		binary.LittleEndian.PutUint32(raw[80:84], 0x40) // DDPF_RGB
		_, err := dds.ReadHeader(bytes.NewReader(raw))
		assert.Error(t, err)
	})
}

func TestFourCCString(t *testing.T) {
	assert.Equal(t, "DXT5", dds.FourCCString(dds.FourCCDXT5))
	assert.Equal(t, "DXT1", dds.FourCCString(0x31545844))
}
