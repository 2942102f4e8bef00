package source

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPathNotFound is returned when nothing exists at the requested path
	ErrPathNotFound = errors.New("image file not found")
	// ErrDecode is returned when the file is not a decodable raster image
	ErrDecode = errors.New("image could not be decoded")
)

// DefaultPDFDPI is the resolution used to rasterise PDF charts
const DefaultPDFDPI = 150

// Options configures a Loader
type Options struct {
	PDFDPI int
}

// Loader turns file paths into decoded images. It is the handle for the
// codec set: raster decoders registered by this package and the PDF renderer.
type Loader struct {
	opts Options
}

// NewLoader creates a loader, filling unset options with defaults
func NewLoader(opts Options) *Loader {
	if opts.PDFDPI <= 0 {
		opts.PDFDPI = DefaultPDFDPI
	}
	return &Loader{opts: opts}
}

// Load resolves path to an absolute path and decodes the image found there.
// The absolute path is returned even when loading fails.
func (l *Loader) Load(path string) (image.Image, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, abs, errors.Wrap(ErrPathNotFound, abs)
		}
		return nil, abs, errors.Wrapf(ErrDecode, "stat %s: %v", abs, err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(abs), ".pdf") {
		img, err = l.renderPDF(abs)
	} else {
		img, err = decodeRaster(abs)
	}
	if err != nil {
		return nil, abs, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, abs, errors.Wrapf(ErrDecode, "%s: empty image", abs)
	}

	return img, abs, nil
}
