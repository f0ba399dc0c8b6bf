// Package bench times kernels and derives the comparison metrics of a
// benchmark case: a sequential baseline followed by every parallel
// configuration (mode × thread count), each checked for consistency with the
// baseline.
package bench
