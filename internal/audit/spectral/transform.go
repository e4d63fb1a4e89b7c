package spectral

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/farcloser/rolloff/internal/types"
)

// Transformer turns frames of a fixed length into Hann-windowed magnitude spectra.
// It owns scratch buffers and is not safe for concurrent use.
type Transformer struct {
	size   int
	window []float64
	fft    *fourier.FFT
	fftIn  []float64
	coeffs []complex128
}

// NewTransformer prepares a transformer for frames of size samples.
func NewTransformer(size int) (*Transformer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: frame length %d", types.ErrInvalidInput, size)
	}

	return &Transformer{
		size:   size,
		window: window.Hann(size),
		fft:    fourier.NewFFT(size),
		fftIn:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
	}, nil
}

// Size returns the frame length the transformer accepts.
func (t *Transformer) Size() int {
	return t.size
}

// Bins returns the length of the spectra produced: the first half of the DFT, size/2.
func (t *Transformer) Bins() int {
	return t.size / 2
}

// Transform computes the magnitude spectrum of frame. Only the first size/2 bins are kept;
// the Nyquist bin of even sizes is dropped.
func (t *Transformer) Transform(frame types.Frame) (types.MagnitudeSpectrum, error) {
	if len(frame) != t.size {
		return nil, fmt.Errorf("%w: frame length %d, expected %d", types.ErrInvalidInput, len(frame), t.size)
	}

	for i, sample := range frame {
		if math.IsNaN(sample) || math.IsInf(sample, 0) {
			return nil, fmt.Errorf("%w: sample %d is %v", types.ErrNumericDegenerate, i, sample)
		}

		t.fftIn[i] = sample * t.window[i]
	}

	t.coeffs = t.fft.Coefficients(t.coeffs, t.fftIn)

	magnitudes := make(types.MagnitudeSpectrum, t.Bins())
	for i := range magnitudes {
		c := t.coeffs[i]
		magnitudes[i] = math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
	}

	return magnitudes, nil
}
