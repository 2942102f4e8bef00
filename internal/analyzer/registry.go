package analyzer

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Strategy names a trend estimation algorithm
type Strategy string

const (
	StrategyEdgeSlope      Strategy = "edge-slope"
	StrategyRegionContrast Strategy = "region-contrast"
)

// Strategies lists the available strategy names, default first
func Strategies() []Strategy {
	return []Strategy{StrategyEdgeSlope, StrategyRegionContrast}
}

// NewAnalyzer creates an analyzer based on the specified variant
func NewAnalyzer(variant string, p Params, logger zerolog.Logger) (Analyzer, error) {
	switch Strategy(variant) {
	case StrategyEdgeSlope, "":
		a := NewEdgeSlope(p)
		a.Logger = logger.With().Str("strategy", string(StrategyEdgeSlope)).Logger()
		return a, nil
	case StrategyRegionContrast:
		a := NewRegionContrast(p)
		a.Logger = logger.With().Str("strategy", string(StrategyRegionContrast)).Logger()
		return a, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", variant)
	}
}
