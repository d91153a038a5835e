package sampling

// SampleOne returns the first index i such that sum(pv[:i+1]) > x.
//
// Unlike a probability distribution, pv may sum to less than 1: if x
// falls past the cumulative total, len(pv) is returned so that callers
// can assign the remaining mass to a default outcome.
func SampleOne(pv []float64, x float64) int {
	var cumProb float64
	for i, p := range pv {
		cumProb += p
		if cumProb > x {
			return i
		}
	}

	return len(pv)
}
