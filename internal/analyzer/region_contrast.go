package analyzer

import (
	"image"
	"math"

	"github.com/rs/zerolog"

	"github.com/ivlev/charttrend/internal/system"
)

// RegionContrast compares the brightness of the left and right thirds of a
// chart and uses edge density as a volatility proxy that boosts confidence.
type RegionContrast struct {
	Params Params
	Logger zerolog.Logger
}

// NewRegionContrast creates a region-contrast analyzer with the given thresholds
func NewRegionContrast(p Params) *RegionContrast {
	return &RegionContrast{Params: p, Logger: zerolog.Nop()}
}

func (a *RegionContrast) Analyze(img image.Image) (Result, error) {
	if err := checkBounds(img); err != nil {
		return Result{}, err
	}
	p := a.Params

	gray := toGrayscale(img)
	defer system.PutGray(gray)

	edges := detectEdges(gray, p.LowThreshold, p.HighThreshold)
	count := countEdges(edges)
	system.PutGray(edges)

	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	density := edgeDensity(count, w*h)

	leftMean := meanColumns(gray, 0, w/3)
	rightMean := meanColumns(gray, 2*w/3, w)

	trend, confidence := classifyContrast(leftMean, rightMean, density, p)
	volatility := round(density, 3)

	a.Logger.Debug().
		Int("edge_pixels", count).
		Float64("density", density).
		Float64("left_mean", leftMean).
		Float64("right_mean", rightMean).
		Str("trend", string(trend)).
		Msg("region contrast compared")

	return Result{
		Trend:      trend,
		Confidence: round(confidence, 2),
		Volatility: &volatility,
	}, nil
}

// edgeDensity is the fraction of pixels flagged as edges
func edgeDensity(edgePixels, totalPixels int) float64 {
	if totalPixels <= 0 {
		return 0
	}
	return float64(edgePixels) / float64(totalPixels)
}

// meanColumns averages the intensity of columns [x0, x1). An empty range yields NaN.
func meanColumns(gray *image.Gray, x0, x1 int) float64 {
	h := gray.Rect.Dy()
	if x1 <= x0 || h == 0 {
		return math.NaN()
	}

	var sum uint64
	for y := 0; y < h; y++ {
		for _, v := range gray.Pix[y*gray.Stride+x0 : y*gray.Stride+x1] {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64((x1-x0)*h)
}

// classifyContrast applies the relative deadband to the two region means.
// NaN means (an image too narrow to have thirds) compare false and fall through to sideways.
func classifyContrast(leftMean, rightMean, density float64, p Params) (Trend, float64) {
	switch {
	case rightMean > leftMean*p.Deadband:
		return Uptrend, math.Min(p.MaxConfidence, p.BaseConfidence+density)
	case leftMean > rightMean*p.Deadband:
		return Downtrend, math.Min(p.MaxConfidence, p.BaseConfidence+density)
	default:
		return Sideways, p.SidewaysConfidence
	}
}
