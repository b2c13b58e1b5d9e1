package imaging

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Identical(t *testing.T) {
	data := pngBase64(t, createPatternImage(32, 24))

	result, err := Compare(data, data)
	require.NoError(t, err)
	assert.Equal(t, 32, result.Width)
	assert.Equal(t, 24, result.Height)
	assert.Equal(t, "png", result.Format)

	diff := decodeResult(t, result)
	for y := 0; y < diff.Height; y++ {
		for x := 0; x < diff.Width; x++ {
			assert.Equal(t, []uint8{0, 0, 0, 255}, pixelAt(diff, x, y))
		}
	}
}

func TestCompare_SingleChannelStep(t *testing.T) {
	a := createPatternImage(8, 8)
	b := createPatternImage(8, 8)
	b.Set(2, 5, color.NRGBA{1, 0, 254, 255}) // blue quadrant: R +1, B -1

	result, err := Compare(pngBase64(t, a), pngBase64(t, b))
	require.NoError(t, err)

	diff := decodeResult(t, result)
	for y := 0; y < diff.Height; y++ {
		for x := 0; x < diff.Width; x++ {
			want := []uint8{0, 0, 0, 255}
			if x == 2 && y == 5 {
				want = []uint8{10, 0, 10, 255}
			}
			assert.Equal(t, want, pixelAt(diff, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestCompare_EnhancementCurve(t *testing.T) {
	a := createInMemoryImage(3, 1, color.NRGBA{100, 100, 100, 255})
	b := createInMemoryImage(3, 1, color.NRGBA{100, 100, 100, 255})
	b.Set(0, 0, color.NRGBA{110, 111, 0, 255}) // 10 -> 100, 11 -> 255, 100 -> 255
	b.Set(1, 0, color.NRGBA{95, 100, 103, 255})

	result, err := Compare(pngBase64(t, a), pngBase64(t, b))
	require.NoError(t, err)

	diff := decodeResult(t, result)
	assert.Equal(t, []uint8{100, 255, 255, 255}, pixelAt(diff, 0, 0))
	assert.Equal(t, []uint8{50, 0, 30, 255}, pixelAt(diff, 1, 0))
	assert.Equal(t, []uint8{0, 0, 0, 255}, pixelAt(diff, 2, 0))
}

func TestCompare_IgnoresAlpha(t *testing.T) {
	a := createInMemoryImage(4, 4, color.NRGBA{100, 50, 25, 255})
	b := createInMemoryImage(4, 4, color.NRGBA{100, 50, 25, 0})

	result, err := Compare(pngBase64(t, a), pngBase64(t, b))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 255}, pixelAt(decodeResult(t, result), 1, 1))
}

func TestCompare_CanvasSize(t *testing.T) {
	tests := []struct {
		name         string
		w1, h1       int
		w2, h2       int
		wantW, wantH int
	}{
		{"same", 10, 10, 10, 10, 10, 10},
		{"second larger", 10, 10, 30, 20, 30, 20},
		{"crossed", 40, 5, 8, 25, 40, 25},
		{"tall and wide", 1, 50, 50, 1, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := pngBase64(t, createPatternImage(tt.w1, tt.h1))
			b := pngBase64(t, createPatternImage(tt.w2, tt.h2))

			result, err := Compare(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, result.Width)
			assert.Equal(t, tt.wantH, result.Height)

			diff := decodeResult(t, result)
			assert.Equal(t, tt.wantW, diff.Width)
			assert.Equal(t, tt.wantH, diff.Height)
		})
	}
}

func TestCompare_InvalidInput(t *testing.T) {
	good := pngBase64(t, createPatternImage(4, 4))

	_, err := Compare(good, "aGVsbG8=")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = Compare("aGVsbG8=", good)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDiffRasters_BufferMismatch(t *testing.T) {
	a := &Raster{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 12)}

	tests := []struct {
		name string
		b    *Raster
	}{
		{"short buffer", &Raster{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 9)}},
		{"other size", &Raster{Width: 4, Height: 1, Channels: 3, Pix: make([]uint8, 12)}},
		{"rgba input", &Raster{Width: 2, Height: 2, Channels: 4, Pix: make([]uint8, 16)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DiffRasters(a, tt.b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBufferConstruction))
		})
	}
}

func TestEnhanceDiff(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{1, 10},
		{7, 70},
		{10, 100},
		{11, 255},
		{200, 255},
		{255, 255},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EnhanceDiff(tt.in), "EnhanceDiff(%d)", tt.in)
	}
}
