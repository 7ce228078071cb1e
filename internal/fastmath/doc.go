// Package fastmath holds the scalar math used in per-sample magnitude loops.
// Building with the fastmath tag swaps the standard library for the
// algo-approx approximations.
package fastmath
