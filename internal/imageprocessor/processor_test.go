package imageprocessor

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestImage(t *testing.T, format string, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	default:
		t.Fatalf("unsupported test format %s", format)
	}
	return &buf
}

func TestProcessScalesDown(t *testing.T) {
	p := NewProcessor(85)

	src := encodeTestImage(t, "jpeg", 2000, 1000)
	out, format, err := p.Process(src, SizeProfile)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	decoded, _, err := image.Decode(out)
	require.NoError(t, err)

	// Aspect ratio preserved, fits within 400x400.
	assert.Equal(t, 400, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestProcessNeverUpscales(t *testing.T) {
	p := NewProcessor(85)

	src := encodeTestImage(t, "png", 100, 80)
	out, format, err := p.Process(src, SizePortfolio)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor(85)

	_, _, err := p.Process(bytes.NewBufferString("not an image"), SizeProfile)
	assert.Error(t, err)
}

func TestNewProcessorQualityBounds(t *testing.T) {
	assert.Equal(t, 85, NewProcessor(0).quality)
	assert.Equal(t, 85, NewProcessor(-3).quality)
	assert.Equal(t, 85, NewProcessor(500).quality)
	assert.Equal(t, 70, NewProcessor(70).quality)
}
