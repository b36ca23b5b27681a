package descriptor

import (
	"fmt"
	"sort"

	"howett.net/plist"
)

// frameSpec is the shape a single frame-info value resolved to. The plist
// ecosystem never settled on one encoding, so a value may be a dict keyed
// "frame" (TexturePacker), a dict keyed "textureRect" (Zwoptex and friends),
// or a bare rect string with no wrapping dict.
type frameSpecKind int

const (
	frameSpecUnrecognized frameSpecKind = iota
	frameSpecInline
	frameSpecFrameKey
	frameSpecTextureRect
)

type frameSpec struct {
	kind frameSpecKind
	rect string
}

// Parse decodes a plist document (XML, binary, GNUstep, or OpenStep) into a
// Descriptor. Document-level problems return a *FormatError; a malformed
// individual entry is recorded on its FrameRecord instead so the rest of the
// document still parses.
func Parse(data []byte) (*Descriptor, error) {
	var root map[string]interface{}
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("decode: %v", err)}
	}

	frames, nested, ok := framesDict(root)
	if !ok {
		return nil, &FormatError{Reason: "unsupported format"}
	}

	d := &Descriptor{}
	for _, name := range frameOrder(data, format, nested, frames) {
		spec, err := resolveFrameSpec(frames[name])
		if err != nil {
			d.Records = append(d.Records, FrameRecord{
				Name: name,
				Err:  &ParseError{Name: name, Err: err},
			})
			continue
		}
		if spec.kind == frameSpecUnrecognized {
			d.Skipped = append(d.Skipped, name)
			continue
		}

		rect, err := ParseRect(spec.rect)
		if err != nil {
			d.Records = append(d.Records, FrameRecord{
				Name: name,
				Err:  &ParseError{Name: name, Input: spec.rect, Err: err},
			})
			continue
		}

		d.Records = append(d.Records, FrameRecord{Name: name, Rect: rect})
	}

	return d, nil
}

// framesDict locates the frames mapping. The flat layout wins over the
// nested one when both are present.
func framesDict(root map[string]interface{}) (frames map[string]interface{}, nested, ok bool) {
	if f, ok := root["frames"].(map[string]interface{}); ok {
		return f, false, true
	}
	if meta, ok := root["metadata"].(map[string]interface{}); ok {
		if f, ok := meta["frames"].(map[string]interface{}); ok {
			return f, true, true
		}
	}
	return nil, false, false
}

func resolveFrameSpec(v interface{}) (frameSpec, error) {
	switch val := v.(type) {
	case string:
		return frameSpec{kind: frameSpecInline, rect: val}, nil
	case map[string]interface{}:
		if raw, ok := val["frame"]; ok {
			s, ok := raw.(string)
			if !ok {
				return frameSpec{}, fmt.Errorf("frame value is %T, not a string", raw)
			}
			return frameSpec{kind: frameSpecFrameKey, rect: s}, nil
		}
		if raw, ok := val["textureRect"]; ok {
			s, ok := raw.(string)
			if !ok {
				return frameSpec{}, fmt.Errorf("textureRect value is %T, not a string", raw)
			}
			return frameSpec{kind: frameSpecTextureRect, rect: s}, nil
		}
		return frameSpec{kind: frameSpecUnrecognized}, nil
	default:
		return frameSpec{}, fmt.Errorf("frame data is %T, not a dict or string", v)
	}
}

// frameOrder returns the frame names in document order. plist dicts decode
// into Go maps, which lose the order the document presented, so for XML
// documents the order is recovered by re-scanning the raw bytes (see
// xmlFrameKeys). Other plist flavors fall back to sorted names, which at
// least keeps runs deterministic.
func frameOrder(data []byte, format int, nested bool, frames map[string]interface{}) []string {
	names := make([]string, 0, len(frames))

	if format == plist.XMLFormat {
		seen := make(map[string]bool, len(frames))
		for _, k := range xmlFrameKeys(data, nested) {
			if _, ok := frames[k]; ok && !seen[k] {
				names = append(names, k)
				seen[k] = true
			}
		}
		// Anything the scan missed still gets processed.
		var rest []string
		for k := range frames {
			if !seen[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		return append(names, rest...)
	}

	for k := range frames {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
