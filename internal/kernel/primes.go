package kernel

import (
	"math"
	"strconv"
	"sync/atomic"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/parallel"
)

// DefaultBlockSize is the number of candidates a worker claims at a time when
// counting primes with dynamic partitioning.
const DefaultBlockSize = 1000

// IsPrime reports whether n is prime, by trial division over odd divisors.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	limit := int(math.Sqrt(float64(n)))
	for i := 3; i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func countPrimes(r parallel.Range) int {
	k := 0
	for i := r.Start; i < r.End; i++ {
		if IsPrime(i) {
			k++
		}
	}
	return k
}

// candidates returns the half-open span covering [1, n]; empty when n < 1.
// n == math.MaxInt has no half-open end and is rejected.
func candidates(n int) (parallel.Range, error) {
	if n == math.MaxInt {
		return parallel.Range{}, apperrors.ValidationError{Field: "size", Message: "prime limit must be below math.MaxInt"}
	}
	return parallel.Range{Start: 1, End: max(n, 0) + 1}, nil
}

// CountPrimesSequential counts the primes in [1, n].
func CountPrimesSequential(n int) (int, error) {
	span, err := candidates(n)
	if err != nil {
		return 0, err
	}
	return countPrimes(span), nil
}

// CountPrimesStatic counts the primes in [1, n] with one fixed block per
// worker. Larger candidates are costlier, so the last worker tends to finish
// last.
func CountPrimesStatic(e *parallel.Executor, n int) (int, error) {
	span, err := candidates(n)
	if err != nil {
		return 0, err
	}
	counts, err := parallel.RunStatic(e, span, func(p parallel.Partition) (int, error) {
		return countPrimes(p.Range), nil
	})
	if err != nil {
		return 0, err
	}
	return parallel.Sum(counts), nil
}

// CountPrimesDynamic counts the primes in [1, n] with workers claiming
// blockSize candidates at a time from a shared cursor and adding their block
// counts to an atomic running total.
func CountPrimesDynamic(e *parallel.Executor, n, blockSize int) (int, error) {
	span, err := candidates(n)
	if err != nil {
		return 0, err
	}
	cursor, err := parallel.NewCursorOver(span, blockSize)
	if err != nil {
		return 0, err
	}
	var total atomic.Int64
	_, err = parallel.RunDynamic(e, cursor, func(p parallel.Partition) (struct{}, error) {
		total.Add(int64(countPrimes(p.Range)))
		return struct{}{}, nil
	})
	if err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}

// PrimeCount is the output of the prime counting kernel.
type PrimeCount int

// Summary implements Result.
func (c PrimeCount) Summary() string { return "count=" + strconv.Itoa(int(c)) }

// Fingerprint implements Result.
func (c PrimeCount) Fingerprint() Fingerprint {
	return Fingerprint{Values: []float64{float64(c)}, Exact: true}
}
