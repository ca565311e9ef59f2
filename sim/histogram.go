package sim

// A Histogram counts, per occupancy level 0..maxOccupancy, how many measured
// ticks were spent with exactly that many rooms in use.
type Histogram struct {
	buckets []uint64
	samples uint64
}

// NewHistogram creates a histogram with buckets 0..maxOccupancy.
func NewHistogram(maxOccupancy int) *Histogram {
	return &Histogram{
		buckets: make([]uint64, maxOccupancy+1),
	}
}

// Add records one tick spent at the given occupancy.
func (h *Histogram) Add(occupied int) {
	h.buckets[occupied]++
	h.samples++
}

// Counts returns a copy of the raw per-occupancy tick counts. The counts
// always sum to the number of measured ticks.
func (h *Histogram) Counts() []uint64 {
	counts := make([]uint64, len(h.buckets))
	copy(counts, h.buckets)

	return counts
}

// Fractions returns the share of measured ticks spent at each occupancy. An
// empty measurement window yields all zeros rather than dividing by zero.
func (h *Histogram) Fractions() []float64 {
	fractions := make([]float64, len(h.buckets))
	if h.samples == 0 {
		return fractions
	}

	for i, count := range h.buckets {
		fractions[i] = float64(count) / float64(h.samples)
	}

	return fractions
}
