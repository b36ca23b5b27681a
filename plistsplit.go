package plistsplit

import (
	"fmt"
	"os"

	"github.com/mhwtools/plistsplit/pkg/descriptor"
	"github.com/mhwtools/plistsplit/pkg/imager"
	"github.com/mhwtools/plistsplit/pkg/splitter"
)

// Version is the release version reported by the CLI.
const Version = "1.2.0"

// Options configures one splitting run.
type Options struct {
	PlistPath string // sprite-sheet metadata file
	ImagePath string // composite sheet image
	OutputDir string // destination directory, created if absent (required)
	Logger    Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the splitting output.
type Result struct {
	OutputDir string
	Saved     []imager.Saved // one per frame record, in document order
	Succeeded int
	Attempted int
	Skipped   []string // entries without recognized frame data
}

// Failures returns the saved entries that did not reach disk.
func (r *Result) Failures() []imager.Saved {
	var failed []imager.Saved
	for _, s := range r.Saved {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// fail reports a fatal-tier error through the logger and returns it.
func (o *Options) fail(err error) (*Result, error) {
	o.logError("%v", err)
	return nil, err
}

// Run executes the splitting pipeline: parse the plist, decode the sheet,
// crop every frame, write the sprites. Document-level problems (unreadable
// or unsupported plist, undecodable sheet, unwritable destination) abort the
// run; a problem with an individual frame only fails that frame's entry in
// Result.Saved.
func Run(opts Options) (*Result, error) {
	if opts.PlistPath == "" {
		return nil, fmt.Errorf("plist path is required")
	}
	if opts.ImagePath == "" {
		return nil, fmt.Errorf("image path is required")
	}
	if opts.OutputDir == "" {
		// The pipeline never guesses a destination from the environment;
		// the CLI supplies imager.DefaultOutputDir when the user does not.
		return nil, fmt.Errorf("output directory is required")
	}

	opts.logInfo("Reading plist: %s", opts.PlistPath)
	data, err := os.ReadFile(opts.PlistPath)
	if err != nil {
		return opts.fail(fmt.Errorf("read plist: %w", err))
	}

	desc, err := descriptor.Parse(data)
	if err != nil {
		return opts.fail(fmt.Errorf("parse plist %q: %w", opts.PlistPath, err))
	}
	for _, name := range desc.Skipped {
		opts.logWarn("Skipping %s: no frame data found", name)
	}

	opts.logInfo("Reading sheet: %s", opts.ImagePath)
	sheet, err := imager.LoadSheet(opts.ImagePath)
	if err != nil {
		return opts.fail(err)
	}

	opts.logInfo("Output directory: %s", opts.OutputDir)
	extractions := splitter.Extract(sheet, desc)

	saved, err := imager.SaveSprites(opts.OutputDir, extractions)
	if err != nil {
		return opts.fail(err)
	}

	res := &Result{
		OutputDir: opts.OutputDir,
		Saved:     saved,
		Attempted: len(saved),
		Skipped:   desc.Skipped,
	}
	for _, s := range saved {
		if !s.OK() {
			opts.logWarn("Error processing %s: %v", s.Name, s.Err)
			continue
		}
		res.Succeeded++
		opts.logInfo("Saved: %s", s.FileName)
	}

	return res, nil
}
