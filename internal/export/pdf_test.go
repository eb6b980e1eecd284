package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{17, 24, 39, 255})
		}
	}
	img.Set(w/2, h/2, color.White)
	return img
}

func TestPDF(t *testing.T) {
	for _, tc := range []struct {
		name  string
		w, h  int
		title string
	}{
		{"wide", 800, 300, "Algebra: solve 2x + 3 = 7"},
		{"tall", 200, 900, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, PDF(&out, board(tc.w, tc.h), tc.title))
			assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
			assert.Contains(t, out.String(), "%%EOF")
		})
	}
}

func TestPDFNoImage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, PDF(&out, nil, "x"), ErrNoImage)
	assert.ErrorIs(t, PDF(&out, image.NewRGBA(image.Rect(0, 0, 0, 0)), "x"), ErrNoImage)
	assert.Zero(t, out.Len())
}

func TestPNG(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PNG(&out, board(20, 10)))
	img, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 10), img.Bounds().Size())
}
