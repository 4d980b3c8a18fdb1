package history

import (
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"

	"github.com/disintegration/imaging"
	"github.com/jsvensson/huescan/internal/color"
)

// ExportSwatch writes a PNG strip with one size×size square per entry, most
// recent on the left. The image format follows the extension of path.
func ExportSwatch(path string, entries []Entry, size int) error {
	if len(entries) == 0 {
		return errors.New("no colors to export")
	}
	if size < 1 {
		return fmt.Errorf("invalid swatch size %d", size)
	}

	strip := imaging.New(size*len(entries), size, stdcolor.NRGBA{})
	for i, e := range entries {
		c, err := color.ParseHex(e.Color)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		r, g, b := c.Clamped()
		square := imaging.New(size, size, stdcolor.NRGBA{R: r, G: g, B: b, A: 0xff})
		strip = imaging.Paste(strip, square, image.Pt(i*size, 0))
	}

	if err := imaging.Save(strip, path); err != nil {
		return fmt.Errorf("saving swatch %s: %w", path, err)
	}
	return nil
}
