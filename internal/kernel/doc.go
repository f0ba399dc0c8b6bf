// Package kernel holds the four numeric kernels of the suite (vector
// statistics, matrix-vector product, prime counting and 3×3 box blur), each in
// a sequential and a parallel form, together with the Kernel registry the
// benchmark harness iterates over.
//
// Parallel forms never share mutable state except through the parallel
// package: reducing kernels return per-partition partials, array kernels write
// through an Arena view, and the dynamic prime counter adds into a single
// atomic total.
package kernel
