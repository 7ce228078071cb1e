// Package constellation builds the symbol maps shared by the modulator and
// the decision stage.
//
// A Map is an ordered list of unique complex points; index i is symbol i.
// Maps come from a geometric builder (Square rings or a Sunflower spiral) or
// from the caller (Custom), are pruned to exactly M points by discarding the
// outermost ones, and are normalized so every coordinate lies in [-1, 1].
// After Build returns, a Map is treated as read-only.
package constellation
