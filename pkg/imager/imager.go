package imager

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mhwtools/plistsplit/pkg/splitter"
)

// ErrUndecodable marks a sheet file whose contents no registered image
// codec accepts.
var ErrUndecodable = errors.New("undecodable image")

// Saved records the persistence outcome for one extraction. Path is set on
// success; Err carries either the extraction's own failure or the write
// failure.
type Saved struct {
	Name     string
	FileName string
	Path     string
	Err      error
}

// OK reports whether the sprite reached disk.
func (s Saved) OK() bool { return s.Err == nil }

// LoadSheet opens and decodes a sprite sheet. PNG, JPEG and GIF decode via
// the standard library; BMP, TIFF and WebP via golang.org/x/image.
func LoadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w: %v", path, ErrUndecodable, err)
	}
	return img, nil
}

// SaveSprites writes every successful extraction into dir as a PNG, creating
// dir (and parents) if needed. One Saved is returned per extraction, in
// order. A sprite that fails to encode or write becomes a per-entry failure;
// only the directory creation itself is fatal. Colliding filenames overwrite
// silently, matching the descriptor's documented collision behavior.
func SaveSprites(dir string, extractions []splitter.Extraction) ([]Saved, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}

	saved := make([]Saved, 0, len(extractions))
	for _, ex := range extractions {
		s := Saved{Name: ex.Name, FileName: ex.FileName}
		if ex.Err != nil {
			s.Err = ex.Err
			saved = append(saved, s)
			continue
		}

		dest := filepath.Join(dir, ex.FileName)
		if err := writePNG(dest, ex.Image); err != nil {
			s.Err = err
		} else {
			s.Path = dest
		}
		saved = append(saved, s)
	}
	return saved, nil
}

func writePNG(dest string, img image.Image) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %q: %w", dest, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", dest, err)
	}
	return f.Close()
}

// DefaultOutputDir returns the conventional destination for a plist:
// <home>/Documents/MHwPlistSplitter/<plist-stem>. Only the CLI consults
// this; the library pipeline takes an explicit directory.
func DefaultOutputDir(plistPath string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Base(plistPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(home, "Documents", "MHwPlistSplitter", stem), nil
}
