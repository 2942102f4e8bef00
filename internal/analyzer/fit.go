package analyzer

// fitLine returns the least-squares line y = slope*x + intercept through the
// points. When every x is identical the slope is undefined and 0 is returned.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0
	}

	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var sxx, sxy float64
	for i := range xs {
		ddx := xs[i] - mx
		sxx += ddx * ddx
		sxy += ddx * (ys[i] - my)
	}
	if sxx == 0 {
		return 0, my
	}

	slope = sxy / sxx
	return slope, my - slope*mx
}
