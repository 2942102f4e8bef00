package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/pkg/errors"
)

// renderPDF rasterises the first page of a PDF chart export. The document is
// opened and closed around the single render.
func (l *Loader) renderPDF(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, errors.Wrapf(ErrDecode, "%s: document has no pages", path)
	}

	img, err := doc.ImageDPI(0, float64(l.opts.PDFDPI))
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: render page 1: %v", path, err)
	}
	return img, nil
}
