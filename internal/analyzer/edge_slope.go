package analyzer

import (
	"image"
	"math"

	"github.com/rs/zerolog"

	"github.com/ivlev/charttrend/internal/system"
)

// EdgeSlope fits a straight line through the edge pixels of the price band
// of a chart resized to a canonical resolution and reads the trend from its slope.
type EdgeSlope struct {
	Params Params
	Logger zerolog.Logger
}

// NewEdgeSlope creates an edge-slope analyzer with the given thresholds
func NewEdgeSlope(p Params) *EdgeSlope {
	return &EdgeSlope{Params: p, Logger: zerolog.Nop()}
}

func (a *EdgeSlope) Analyze(img image.Image) (Result, error) {
	if err := checkBounds(img); err != nil {
		return Result{}, err
	}
	p := a.Params

	// Step 1: Grayscale at the source resolution, so alpha never reaches the scaler
	gray := toGrayscale(img)

	// Step 2: Canonical resolution keeps the slope thresholds meaningful
	gray = resizeGray(gray, p.CanonicalWidth, p.CanonicalHeight)

	// Step 3: Blur and edges
	blurred := gaussianBlur(gray, p.BlurKernel)
	system.PutGray(gray)
	edges := detectEdges(blurred, p.LowThreshold, p.HighThreshold)
	system.PutGray(blurred)

	// Step 4: Drop the top and bottom margins where axis labels and legends live
	xs, ys := bandCoordinates(edges, p.BandTop, p.BandBottom)
	system.PutGray(edges)

	// Step 5: Not enough edges to fit a line
	if len(xs) < p.MinEdgePixels {
		a.Logger.Debug().
			Int("edge_pixels", len(xs)).
			Int("min_edge_pixels", p.MinEdgePixels).
			Msg("low signal, falling back to sideways")
		return Result{
			Trend:      Sideways,
			Confidence: p.LowSignalConfidence,
			LowSignal:  true,
		}, nil
	}

	// Step 6: Least-squares slope and classification
	slope, intercept := fitLine(xs, ys)
	trend := classifySlope(slope, p.SlopeThreshold)
	confidence := round(math.Min(math.Abs(slope)*p.SlopeScale, p.MaxSlopeConfidence), 2)

	a.Logger.Debug().
		Int("edge_pixels", len(xs)).
		Float64("slope", slope).
		Float64("intercept", intercept).
		Str("trend", string(trend)).
		Msg("edge slope fitted")

	return Result{Trend: trend, Confidence: confidence}, nil
}

// bandCoordinates collects edge pixel coordinates from rows in [top*h, bottom*h).
// Rows are reported relative to the top of the band.
func bandCoordinates(edges *image.Gray, top, bottom float64) (xs, ys []float64) {
	w, h := edges.Rect.Dx(), edges.Rect.Dy()
	y0 := int(float64(h) * top)
	y1 := int(float64(h) * bottom)
	if y1 > h {
		y1 = h
	}

	for y := y0; y < y1; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+w]
		for x, v := range row {
			if v > 0 {
				xs = append(xs, float64(x))
				ys = append(ys, float64(y-y0))
			}
		}
	}
	return xs, ys
}

// classifySlope maps an image-space slope to a trend. Image rows grow
// downward, so a negative slope is a rising price.
func classifySlope(slope, threshold float64) Trend {
	switch {
	case slope < -threshold:
		return Uptrend
	case slope > threshold:
		return Downtrend
	default:
		return Sideways
	}
}
