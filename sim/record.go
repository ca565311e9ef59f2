package sim

// Period tags the time of day a patient arrived.
type Period string

// The two capacity modes of a day.
const (
	Day   Period = "day"
	Night Period = "night"
)

// An OutcomeRecord is the measured outcome of one admitted patient. Records
// are only emitted for arrivals past the warm-up threshold and are never
// mutated afterwards.
type OutcomeRecord struct {
	// Class is the patient class ordinal.
	Class int

	// Arrival is the arrival tick relative to the end of the warm-up.
	Arrival int

	// Period is the time of day at the ARRIVAL tick, not at admission.
	Period Period

	// Wait is the number of ticks spent in the queue.
	Wait int

	// Service is the sampled surgery duration in minutes.
	Service int
}
