package analyzer

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Enough fractional digits to hold the exact binary expansion of any value
// we round, so only true ties are ties.
const exactDigits = 80

// round rounds the exact binary value of v to the given number of decimal
// places. Exact ties go to the even digit.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	d, err := decimal.NewFromString(new(big.Float).SetFloat64(v).Text('f', exactDigits))
	if err != nil {
		return v
	}
	f, _ := d.RoundBank(places).Float64()
	return f
}
