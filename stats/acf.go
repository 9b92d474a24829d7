package stats

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// fftThreshold is the chain length from which Autocovariance switches from
// the direct sum to the FFT.
const fftThreshold = 64

// Autocovariance calculates the autocovariance of x for lags 0 to len(x)-1.
// Lag t is the sum of (x[i]-mean)*(x[i+t]-mean) over all valid i, divided by
// len(x), so lag 0 is the population (divide-by-N) variance.
// Returns nil for empty input.
func Autocovariance(x []float64) []float64 {
	if len(x) < fftThreshold {
		return AutocovarianceDirect(x)
	}
	return AutocovarianceFFT(x)
}

// AutocovarianceDirect computes the autocovariance with the O(N²) sum.
func AutocovarianceDirect(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	mean := Mean(x)
	acov := make([]float64, n)
	for k := 0; k < n; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (x[i] - mean) * (x[i-k] - mean)
		}
		acov[k] = sum / float64(n)
	}

	return acov
}

// AutocovarianceFFT computes the autocovariance in O(N log N).
// The centered series is zero padded to at least 2N before the transform so
// the circular correlation of the padded sequence equals the linear one.
func AutocovarianceFFT(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	size := 1
	for size < 2*n {
		size <<= 1
	}

	mean := Mean(x)
	padded := make([]float64, size)
	for i, v := range x {
		padded[i] = v - mean
	}

	fft := fourier.NewFFT(size)
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	// Sequence is unnormalized: every value is scaled by size.
	corr := fft.Sequence(nil, coeff)

	acov := make([]float64, n)
	scale := float64(size) * float64(n)
	for k := range acov {
		acov[k] = corr[k] / scale
	}

	return acov
}

// Autocorrelation calculates the autocorrelation of x for lags 0 to len(x)-1.
// Returns nil if x is empty or has zero variance.
func Autocorrelation(x []float64) []float64 {
	acov := Autocovariance(x)
	if acov == nil || acov[0] == 0 {
		return nil
	}

	acf := make([]float64, len(acov))
	for k, v := range acov {
		acf[k] = v / acov[0]
	}
	return acf
}
