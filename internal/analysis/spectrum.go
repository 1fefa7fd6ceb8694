package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k| for k in [0, n/2) of the mean-removed series.
// Series of any length are accepted.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC component of a series
// sampled every interval time units, in cycles per unit time, and its
// magnitude. A flat series reports power 0.
func DominantFrequency(series []float64, interval float64) (freq, power float64) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || interval <= 0 {
		return 0, 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(best) / (float64(len(series)) * interval), ps[best]
}
