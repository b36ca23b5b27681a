package splitter

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhwtools/plistsplit/pkg/descriptor"
)

// testSheet builds a sheet where every pixel encodes its own coordinates,
// so crops can be verified positionally.
func testSheet(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func TestExtractCountAndOrder(t *testing.T) {
	sheet := testSheet(32, 32)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "first", Rect: descriptor.Rect{X: 0, Y: 0, W: 8, H: 8}},
			{Name: "bad", Err: errors.New("malformed rect")},
			{Name: "second", Rect: descriptor.Rect{X: 8, Y: 8, W: 8, H: 8}},
			{Name: "degenerate", Rect: descriptor.Rect{X: 0, Y: 0, W: 0, H: 8}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, len(desc.Records))

	wantNames := []string{"first", "bad", "second", "degenerate"}
	for i, name := range wantNames {
		assert.Equal(t, name, got[i].Name)
	}

	assert.True(t, got[0].OK())
	assert.False(t, got[1].OK())
	assert.True(t, got[2].OK())
	assert.False(t, got[3].OK())
}

func TestExtractOversizedRectFailsFrameOnly(t *testing.T) {
	// A well-formed rect string can still claim a buffer-overflowing size;
	// that frame fails while the rest of the batch proceeds.
	sheet := testSheet(16, 16)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "huge", Rect: descriptor.Rect{X: 0, Y: 0, W: maxFramePixels + 1, H: maxFramePixels + 1}},
			{Name: "wide", Rect: descriptor.Rect{X: 0, Y: 0, W: maxFramePixels, H: 2}},
			{Name: "normal", Rect: descriptor.Rect{X: 0, Y: 0, W: 4, H: 4}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, 3)

	assert.False(t, got[0].OK())
	assert.Nil(t, got[0].Image)
	assert.False(t, got[1].OK())
	require.True(t, got[2].OK())
	assert.Equal(t, image.Rect(0, 0, 4, 4), got[2].Image.Bounds())
}

func TestExtractCropPixels(t *testing.T) {
	sheet := testSheet(32, 32)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "tile", Rect: descriptor.Rect{X: 10, Y: 20, W: 4, H: 3}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, 1)
	require.True(t, got[0].OK())

	img := got[0].Image
	require.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := color.NRGBA{R: uint8(10 + x), G: uint8(20 + y), B: 0, A: 255}
			assert.Equal(t, want, img.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestExtractOutOfBoundsPadsTransparent(t *testing.T) {
	sheet := testSheet(16, 16)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "edge", Rect: descriptor.Rect{X: 12, Y: 12, W: 8, H: 8}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)

	img := got[0].Image
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	// Top-left quadrant overlaps the sheet.
	assert.Equal(t, color.NRGBA{R: 12, G: 12, B: 0, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 15, G: 15, B: 0, A: 255}, img.NRGBAAt(3, 3))

	// Everything past the sheet edge is transparent.
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(4, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 4))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(7, 7))
}

func TestExtractFullyOutOfBounds(t *testing.T) {
	sheet := testSheet(8, 8)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "ghost", Rect: descriptor.Rect{X: 100, Y: 100, W: 4, H: 4}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), got[0].Image.Bounds())
	assert.Equal(t, color.NRGBA{}, got[0].Image.NRGBAAt(0, 0))
}

func TestExtractNonZeroOriginSheet(t *testing.T) {
	// Decoded sub-images can have a non-zero origin; rects are still
	// relative to the sheet's own top-left corner.
	base := testSheet(32, 32)
	sub := base.SubImage(image.Rect(8, 8, 24, 24)).(*image.NRGBA)

	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "inner", Rect: descriptor.Rect{X: 2, Y: 2, W: 2, H: 2}},
		},
	}

	got := Extract(sub, desc)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 0, A: 255}, got[0].Image.NRGBAAt(0, 0))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"hero_0", "hero_0.png"},
		{"hero.png", "hero.png"},
		{"idle/1", "1.png"},
		{"run/1.tga", "1.png"},
		{`enemy\boss.png`, "boss.png"},
		{"a.b.c", "a.b.png"},
		{".hidden", ".hidden.png"},
		{"", ".png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.name), "FileName(%q)", tt.name)
	}
}

func TestFileNameCollisionsAreDistinctExtractions(t *testing.T) {
	// Two names collapsing to one filename still yield two successful
	// extractions; the overwrite happens at persist time and is accepted.
	sheet := testSheet(16, 16)
	desc := &descriptor.Descriptor{
		Records: []descriptor.FrameRecord{
			{Name: "idle/1", Rect: descriptor.Rect{X: 0, Y: 0, W: 4, H: 4}},
			{Name: "run/1", Rect: descriptor.Rect{X: 4, Y: 0, W: 4, H: 4}},
		},
	}

	got := Extract(sheet, desc)
	require.Len(t, got, 2)
	assert.True(t, got[0].OK())
	assert.True(t, got[1].OK())
	assert.Equal(t, got[0].FileName, got[1].FileName)
}
