package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	opaque := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	opaque.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	alpha := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	alpha.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 0, A: 128})

	img, err := Decode(bytes.NewReader(encodePNG(t, gray)))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Channels)
	assert.Equal(t, []byte{0, 200}, img.Pixels)

	img, err = Decode(bytes.NewReader(encodePNG(t, opaque)))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, []byte{10, 20, 30}, img.Pixels)

	img, err = Decode(bytes.NewReader(encodePNG(t, alpha)))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Channels)
	assert.Equal(t, byte(128), img.Pixels[3])
	assert.InDelta(t, 200, int(img.Pixels[0]), 2)
	assert.InDelta(t, 100, int(img.Pixels[1]), 2)
}

func TestDecodeFlipVertical(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 2))
	src.SetGray(0, 0, color.Gray{Y: 1})
	src.SetGray(0, 1, color.Gray{Y: 2})
	raw := encodePNG(t, src)

	img, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, img.Pixels)

	img, err = Decode(bytes.NewReader(raw), WithFlipVertical())
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1}, img.Pixels)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"))
	assert.Error(t, err)
}

func TestDecodeFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 5; i++ {
		img := image.NewGray(image.Rect(0, 0, i, 1))
		p := filepath.Join(dir, "tex"+string(rune('0'+i))+".png")
		require.NoError(t, os.WriteFile(p, encodePNG(t, img), 0o644))
		paths = append(paths, p)
	}

	images, err := DecodeFiles(paths, 3)
	require.NoError(t, err)
	require.Len(t, images, 5)
	for i, img := range images {
		assert.Equal(t, i+1, img.Width)
	}
}

func TestDecodeFilesFailsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	require.NoError(t, os.WriteFile(good, encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1))), 0o644))

	_, err := DecodeFiles([]string{good, filepath.Join(dir, "missing.png")}, 2)
	assert.ErrorContains(t, err, "missing.png")
}
