package descriptor

import (
	"bytes"
	"encoding/xml"
)

// xmlFrameKeys scans an XML plist and returns the keys of the frames dict in
// the order the document declares them. nested selects the
// metadata -> frames path over the top-level frames path, so the scan follows
// the same dict Parse resolved. The scan is best-effort: on any XML hiccup it
// returns what it has and frameOrder fills in the rest.
func xmlFrameKeys(data []byte, nested bool) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		path    []string // dict/array nesting, each entry the key it hangs under
		pending string   // most recent <key> awaiting its value
		keys    []string
	)

	want := []string{"", "frames"}
	if nested {
		want = []string{"", "metadata", "frames"}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "plist":
				// Container element, nothing to track.
			case "dict", "array":
				path = append(path, pending)
				pending = ""
			case "key":
				var k string
				if err := dec.DecodeElement(&k, &t); err != nil {
					return keys
				}
				pending = k
				if pathEqual(path, want) {
					keys = append(keys, k)
				}
			default:
				// Scalar value (string, integer, real, data, ...):
				// consume it whole, it settles the pending key.
				if err := dec.Skip(); err != nil {
					return keys
				}
				pending = ""
			}
		case xml.EndElement:
			if t.Name.Local == "dict" || t.Name.Local == "array" {
				if len(path) > 0 {
					path = path[:len(path)-1]
				}
			}
		}
	}
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
