// Package window generates the analysis windows applied before the carrier
// estimation FFT.
//
// Only the handful of cosine-sum windows that matter for peak picking on a
// power-law spectrum are provided. Coefficients are multiplied into the
// signal with algo-vecmath block kernels.
package window
