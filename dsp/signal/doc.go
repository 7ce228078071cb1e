// Package signal provides deterministic generators for complex test and
// channel signals: carrier tones, circular Gaussian noise and random symbol
// messages.
package signal
