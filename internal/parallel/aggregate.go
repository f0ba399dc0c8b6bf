package parallel

// Number is the set of partial result types that combine by addition.
type Number interface {
	~int | ~int32 | ~int64 | ~uint64 | ~float64
}

// Sum combines partial results by addition, in partition order.
func Sum[T Number](partials []T) T {
	var total T
	for _, p := range partials {
		total += p
	}
	return total
}

// Mean divides the sum of partials by n.
func Mean(partials []float64, n int) float64 {
	return Sum(partials) / float64(n)
}
