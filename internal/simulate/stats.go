package simulate

import "math"

// Stats accumulates a running mean and variance.
type Stats struct {
	N    int
	Sum  float64
	Sum2 float64 // sum of squares
	Min  float64
	Max  float64
}

// Add records one observation.
func (s *Stats) Add(v float64) {
	if s.N == 0 || v < s.Min {
		s.Min = v
	}
	if s.N == 0 || v > s.Max {
		s.Max = v
	}
	s.N++
	s.Sum += v
	s.Sum2 += v * v
}

// Mean returns the arithmetic mean
func (s *Stats) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Stats) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.N)*mean*mean) / float64(s.N-1)
}

// StdDev returns the sample standard deviation
func (s *Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}
