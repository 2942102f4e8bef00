package analyzer

// Edge detector thresholds on the L1 Sobel gradient magnitude
const (
	DefaultLowThreshold  = 50
	DefaultHighThreshold = 150
	DefaultBlurKernel    = 5
)

// Edge-slope constants
const (
	DefaultCanonicalWidth      = 800
	DefaultCanonicalHeight     = 400
	DefaultBandTop             = 0.2
	DefaultBandBottom          = 0.8
	DefaultMinEdgePixels       = 100
	DefaultSlopeThreshold      = 0.02
	DefaultSlopeScale          = 10.0
	DefaultLowSignalConfidence = 0.1
	DefaultMaxSlopeConfidence  = 1.0
)

// Region-contrast constants
const (
	DefaultDeadband           = 1.05
	DefaultBaseConfidence     = 0.5
	DefaultMaxConfidence      = 0.9
	DefaultSidewaysConfidence = 0.4
)

// Params holds every tunable of both strategies
type Params struct {
	LowThreshold  float64 `yaml:"low_threshold" validate:"gte=0"`
	HighThreshold float64 `yaml:"high_threshold" validate:"gtefield=LowThreshold"`
	BlurKernel    int     `yaml:"blur_kernel" validate:"oneof=1 3 5 7"`

	CanonicalWidth      int     `yaml:"canonical_width" validate:"gt=0"`
	CanonicalHeight     int     `yaml:"canonical_height" validate:"gt=0"`
	BandTop             float64 `yaml:"band_top" validate:"gte=0,lt=1"`
	BandBottom          float64 `yaml:"band_bottom" validate:"gtfield=BandTop,lte=1"`
	MinEdgePixels       int     `yaml:"min_edge_pixels" validate:"gte=2"`
	SlopeThreshold      float64 `yaml:"slope_threshold" validate:"gte=0"`
	SlopeScale          float64 `yaml:"slope_scale" validate:"gt=0"`
	LowSignalConfidence float64 `yaml:"low_signal_confidence" validate:"gte=0,lte=1"`
	MaxSlopeConfidence  float64 `yaml:"max_slope_confidence" validate:"gte=0,lte=1"`

	Deadband           float64 `yaml:"deadband" validate:"gte=1"`
	BaseConfidence     float64 `yaml:"base_confidence" validate:"gte=0,lte=1"`
	MaxConfidence      float64 `yaml:"max_confidence" validate:"gte=0,lte=1"`
	SidewaysConfidence float64 `yaml:"sideways_confidence" validate:"gte=0,lte=1"`
}

// DefaultParams returns the stock thresholds
func DefaultParams() Params {
	return Params{
		LowThreshold:        DefaultLowThreshold,
		HighThreshold:       DefaultHighThreshold,
		BlurKernel:          DefaultBlurKernel,
		CanonicalWidth:      DefaultCanonicalWidth,
		CanonicalHeight:     DefaultCanonicalHeight,
		BandTop:             DefaultBandTop,
		BandBottom:          DefaultBandBottom,
		MinEdgePixels:       DefaultMinEdgePixels,
		SlopeThreshold:      DefaultSlopeThreshold,
		SlopeScale:          DefaultSlopeScale,
		LowSignalConfidence: DefaultLowSignalConfidence,
		MaxSlopeConfidence:  DefaultMaxSlopeConfidence,
		Deadband:            DefaultDeadband,
		BaseConfidence:      DefaultBaseConfidence,
		MaxConfidence:       DefaultMaxConfidence,
		SidewaysConfidence:  DefaultSidewaysConfidence,
	}
}
