package time

import (
	"math"
	"math/cmplx"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length      int
	Mean        float64
	Variance    float64 // population variance
	StdDev      float64
	RMS         float64
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	Peak        float64 // max(|max|, |min|)
	CrestFactor float64 // peak / RMS
	Energy      float64 // sum of squares
	Power       float64 // energy / length
}

// Calculate computes all statistics in a single pass using Welford's
// online algorithm for the mean and variance.
func Calculate(signal []float64) Stats {
	var s StreamingStats
	s.Update(signal)
	return s.Result()
}

// CalculateMagnitude computes statistics of |x| for complex samples.
func CalculateMagnitude(samples []complex128) Stats {
	var s StreamingStats
	for _, c := range samples {
		s.add(cmplx.Abs(c))
	}
	return s.Result()
}

// StdDev returns the population standard deviation of the signal.
func StdDev(signal []float64) float64 {
	return Calculate(signal).StdDev
}

// StreamingStats accumulates statistics across successive blocks.
type StreamingStats struct {
	n      int
	mean   float64
	m2     float64
	sumSq  float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update feeds a block of samples.
func (s *StreamingStats) Update(block []float64) {
	for _, x := range block {
		s.add(x)
	}
}

func (s *StreamingStats) add(x float64) {
	if s.n == 0 || x > s.maxVal {
		s.maxVal = x
		s.maxPos = s.n
	}
	if s.n == 0 || x < s.minVal {
		s.minVal = x
		s.minPos = s.n
	}

	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
	s.sumSq += x * x
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}

// Result returns the statistics of everything fed so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf
	if variance < 0 {
		variance = 0
	}
	rms := math.Sqrt(s.sumSq / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:      s.n,
		Mean:        s.mean,
		Variance:    variance,
		StdDev:      math.Sqrt(variance),
		RMS:         rms,
		Max:         s.maxVal,
		MaxPos:      s.maxPos,
		Min:         s.minVal,
		MinPos:      s.minPos,
		Peak:        peak,
		CrestFactor: crest,
		Energy:      s.sumSq,
		Power:       s.sumSq / nf,
	}
}
