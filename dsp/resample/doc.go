// Package resample provides integer-factor interpolation of complex sample
// streams using a polyphase windowed-sinc FIR.
//
// The prototype filter has odd length and its group delay is removed, so
// output sample n*up lines up with input sample n. This is what the timing
// search in modem/sync relies on when it picks a decimation phase.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// Common workflows:
//   - NewInterpolator(up, opts...) then Process for repeated use
//   - Interpolate(input, up, opts...) as a one-shot helper
package resample
