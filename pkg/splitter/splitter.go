package splitter

import (
	"fmt"
	"image"
	"image/draw"
	"path"
	"strings"

	"github.com/mhwtools/plistsplit/pkg/descriptor"
)

// Extraction is the outcome of splitting one named frame out of a sheet.
// Image holds the independently owned crop buffer on success; Err marks a
// per-frame failure. Exactly one Extraction is produced per descriptor
// record, in descriptor order.
type Extraction struct {
	Name     string
	FileName string
	Image    *image.NRGBA
	Err      error
}

// OK reports whether the frame was extracted.
func (e Extraction) OK() bool { return e.Err == nil }

// maxFramePixels caps a single frame's buffer at 1GiB of NRGBA pixels.
const maxFramePixels = 1 << 28

// Extract crops every frame of desc out of src. A failing frame never stops
// the batch: it yields an Extraction with Err set while the rest proceed.
// The source image is only read; every returned buffer is a fresh copy.
func Extract(src image.Image, desc *descriptor.Descriptor) []Extraction {
	out := make([]Extraction, 0, len(desc.Records))
	for _, rec := range desc.Records {
		out = append(out, extractOne(src, rec))
	}
	return out
}

func extractOne(src image.Image, rec descriptor.FrameRecord) Extraction {
	ext := Extraction{Name: rec.Name, FileName: FileName(rec.Name)}

	if rec.Err != nil {
		ext.Err = rec.Err
		return ext
	}

	r := rec.Rect
	if r.W <= 0 || r.H <= 0 {
		ext.Err = fmt.Errorf("empty frame %dx%d", r.W, r.H)
		return ext
	}
	// image.NewNRGBA panics once the pixel buffer length overflows, so a
	// frame claiming an absurd size must fail here, not take down the batch.
	if r.W > maxFramePixels/r.H {
		ext.Err = fmt.Errorf("frame %dx%d exceeds pixel budget", r.W, r.H)
		return ext
	}

	// Permissive crop: the destination is always exactly W x H, and only the
	// part of the region that overlaps the sheet is copied. Anything hanging
	// past the sheet edge stays transparent instead of failing the frame.
	dst := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	bounds := src.Bounds()
	region := image.Rect(
		bounds.Min.X+r.X,
		bounds.Min.Y+r.Y,
		bounds.Min.X+r.X+r.W,
		bounds.Min.Y+r.Y+r.H,
	)
	if visible := region.Intersect(bounds); !visible.Empty() {
		draw.Draw(dst, visible.Sub(region.Min), src, visible.Min, draw.Src)
	}

	ext.Image = dst
	return ext
}

// FileName derives the output filename for a sprite name: directory
// components and any existing extension are stripped, and ".png" appended.
// Distinct sprite names can collapse to the same filename ("idle/1" and
// "run/1" both become "1.png"); the later one overwrites the earlier when
// persisted, which matches how sheet tools have always behaved.
func FileName(name string) string {
	// Sheets packed on Windows carry backslash separators.
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".png"
}
