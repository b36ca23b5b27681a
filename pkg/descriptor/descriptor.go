package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is a pixel-aligned bounding box in sheet coordinates.
type Rect struct {
	X, Y, W, H int
}

// FrameRecord is one named frame taken from the plist. When the rect string
// of an entry cannot be parsed, the record is kept in document order with Err
// set, so that extraction still reports one outcome per entry.
type FrameRecord struct {
	Name string
	Rect Rect
	Err  error
}

// Descriptor is the parsed sprite-sheet metadata: the frame records in
// document order, plus the names of entries that carried no recognized
// frame key and were excluded.
type Descriptor struct {
	Records []FrameRecord
	Skipped []string
}

// FormatError reports that the metadata document as a whole is unusable:
// it either failed to decode as a plist or presents neither of the two
// recognized layouts (top-level "frames", or "frames" nested under
// "metadata").
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "plist: " + e.Reason
}

// ParseError reports that a single frame entry is malformed. It carries the
// sprite name so callers can say which entry failed.
type ParseError struct {
	Name  string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("frame %q: cannot parse rect string %q: %v", e.Name, e.Input, e.Err)
	}
	return fmt.Sprintf("frame %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRect parses the plist rectangle notation "{{x,y},{w,h}}" into a Rect.
// Components may be fractional in the document; they are truncated toward
// zero, not rounded. Anything other than exactly two comma pairs is an error.
func ParseRect(s string) (Rect, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "{}")
	parts := strings.Split(trimmed, "},{")
	if len(parts) != 2 {
		return Rect{}, fmt.Errorf("want two {x,y} pairs, got %d", len(parts))
	}

	x, y, err := parsePair(parts[0])
	if err != nil {
		return Rect{}, err
	}
	w, h, err := parsePair(parts[1])
	if err != nil {
		return Rect{}, err
	}

	return Rect{X: x, Y: y, W: w, H: h}, nil
}

func parsePair(s string) (int, int, error) {
	s = strings.Trim(strings.TrimSpace(s), "{}")
	tokens := strings.Split(s, ",")
	if len(tokens) != 2 {
		return 0, 0, fmt.Errorf("want two components in %q, got %d", s, len(tokens))
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("component %q is not numeric", strings.TrimSpace(tokens[0]))
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("component %q is not numeric", strings.TrimSpace(tokens[1]))
	}

	return int(a), int(b), nil
}
