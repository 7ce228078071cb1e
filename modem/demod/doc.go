// Package demod turns synchronized samples back into symbols.
//
// Decide is the hard decision for keyed constellations: every sample maps
// to the nearest point of the shared constellation map, ties going to the
// lower index. QuadratureDemod is the FM discriminator used for frequency
// keyed streams.
package demod
