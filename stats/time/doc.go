// Package time computes single-pass time-domain statistics for real
// envelopes and complex sample blocks. The receive chain uses it to derive
// the power threshold that separates a burst from its surrounding noise.
package time
