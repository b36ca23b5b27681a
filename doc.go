// Package plistsplit splits a composite sprite-sheet image into individual
// PNG files, driven by a plist metadata document that records each sprite's
// name and bounding rectangle within the sheet.
//
// The CLI lives in cmd/plistsplit; this root package exposes the same
// pipeline as a Go API so that callers can embed splitting in their own
// tools without shelling out.
//
// # Quick start
//
//	result, err := plistsplit.Run(plistsplit.Options{
//	    PlistPath: "hero.plist",
//	    ImagePath: "hero.png",
//	    OutputDir: "sprites",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("split %d of %d sprites\n", result.Succeeded, result.Attempted)
//
// # Metadata formats
//
// Two plist layouts are recognized: a top-level "frames" dict, or a "frames"
// dict nested under "metadata". Each frame entry may record its rectangle
// under a "frame" key, a "textureRect" key, or as a bare rect string. The
// rectangle notation is the usual "{{x,y},{w,h}}"; fractional components are
// truncated to whole pixels.
//
// # Error tiers
//
// An unusable document, an undecodable sheet, or an unwritable destination
// aborts the whole run. A single malformed frame only fails that frame's
// entry in [Result.Saved]; every other frame still extracts, and entries
// keep document order. A frame rectangle hanging past the sheet edge is not
// an error either: the overflow is padded with transparency.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package plistsplit
