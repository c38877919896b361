// Package harmonic provides prime-harmonic kernels for the phc function
// registry.
package harmonic

import (
	"math"

	"github.com/NEW-BOOTY/PHCSystem"
)

// DefaultPrimes is the number of primes used by Register when none is given.
const DefaultPrimes = 1000

// Primes returns the first n primes in increasing order.
func Primes(n int) []int {
	if n <= 0 {
		return nil
	}
	limit := sieveBound(n)
	for {
		ps := sieve(limit, n)
		if len(ps) >= n {
			return ps[:n]
		}
		limit *= 2
	}
}

// sieveBound overestimates the n'th prime: p_n < n(ln n + ln ln n) for n ≥ 6.
func sieveBound(n int) int {
	if n < 6 {
		return 15
	}
	f := float64(n)
	return int(f*(math.Log(f)+math.Log(math.Log(f)))) + 1
}

// sieve returns up to max primes not exceeding limit.
func sieve(limit, max int) []int {
	composite := make([]bool, limit+1)
	var ps []int
	for i := 2; i <= limit && len(ps) < max; i++ {
		if composite[i] {
			continue
		}
		ps = append(ps, i)
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return ps
}

// Kernel computes Σ p^(-1/2) cos(t ln p) over a fixed set of primes. Each
// prime contributes a wave whose frequency is its logarithm and whose
// amplitude is its inverse square root.
type Kernel struct {
	freq []float64
	amp  []float64
}

// NewKernel creates a kernel over the first n primes.
func NewKernel(n int) *Kernel {
	ps := Primes(n)
	k := Kernel{
		freq: make([]float64, len(ps)),
		amp:  make([]float64, len(ps)),
	}
	for i, p := range ps {
		k.freq[i] = math.Log(float64(p))
		k.amp[i] = 1 / math.Sqrt(float64(p))
	}
	return &k
}

// Len returns the number of primes in the kernel.
func (k *Kernel) Len() int {
	return len(k.freq)
}

// At evaluates the kernel at t.
func (k *Kernel) At(t float64) float64 {
	var s float64
	for i, f := range k.freq {
		s += k.amp[i] * math.Cos(t*f)
	}
	return s
}

// Func wraps the kernel for a function registry. Infinite arguments are
// outside its domain.
func (k *Kernel) Func() phc.Func {
	return phc.Real(k.At)
}

// Register returns a context option that registers the primeharm function
// over the first n primes. Values of n less than 1 select DefaultPrimes.
func Register(n int) phc.ContextOption {
	if n < 1 {
		n = DefaultPrimes
	}
	return phc.SetFunc("primeharm", NewKernel(n).Func())
}
