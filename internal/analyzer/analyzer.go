package analyzer

import (
	"image"

	"github.com/pkg/errors"
)

// Trend is the direction reported for a chart image
type Trend string

const (
	Uptrend   Trend = "Uptrend"
	Downtrend Trend = "Downtrend"
	Sideways  Trend = "Sideways"
)

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("image has no pixels")

// Result is the verdict for a single image
type Result struct {
	Trend      Trend    `json:"trend"`
	Confidence float64  `json:"confidence"`           // 0.0-1.0, two decimals
	Volatility *float64 `json:"volatility,omitempty"` // edge density, region-contrast only

	// LowSignal marks the fallback taken when too few edges exist to fit a line
	LowSignal bool `json:"-"`
}

// Analyzer is the interface for trend estimation strategies
type Analyzer interface {
	Analyze(img image.Image) (Result, error)
}

func checkBounds(img image.Image) error {
	if img == nil {
		return ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrEmptyImage
	}
	return nil
}
