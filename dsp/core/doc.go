// Package core holds small numeric helpers and shared configuration used by
// the dsp and modem packages.
//
// Sample streams travel between stages as []complex64 (the capture format)
// and are widened to []complex128 for arithmetic. The conversion helpers in
// this package always allocate, so a stage never aliases the caller's buffer.
package core
