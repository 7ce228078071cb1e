// Package modem holds the error taxonomy shared by the constellation,
// modulation, synchronization and decision packages.
//
// The sub-packages form a batch transmit/receive chain:
//
//	constellation -> mod -> (channel) -> sync -> demod
//
// The same [constellation.Map] is used on both ends of the chain. Every stage
// validates its own inputs and fails immediately; errors wrap one of the
// sentinels below so callers can branch with errors.Is and decide whether to
// re-run a stage with different parameters.
package modem
