package sim

import "math"

// Minutes per simulated day and hour.
const (
	MinutesPerDay  = 1440
	MinutesPerHour = 60
)

// A Schedule resolves how many rooms are open at a given minute. Each
// 1440-minute day starts with the night window; the rest is day. It is a
// pure value with no state beyond its parameters.
type Schedule struct {
	dayRooms     int
	nightRooms   int
	nightMinutes int
}

// NewSchedule creates a schedule with the given room counts and night
// window length in hours.
func NewSchedule(dayRooms, nightRooms int, nightLengthHours float64) Schedule {
	return Schedule{
		dayRooms:     dayRooms,
		nightRooms:   nightRooms,
		nightMinutes: int(math.Round(nightLengthHours * MinutesPerHour)),
	}
}

// IsDay reports whether the tick falls outside the night window. It also
// tags arrivals and outcome records with their period.
func (s Schedule) IsDay(tick int) bool {
	return tick%MinutesPerDay >= s.nightMinutes
}

// CapacityAt returns the number of rooms open at the tick.
func (s Schedule) CapacityAt(tick int) int {
	if s.IsDay(tick) {
		return s.dayRooms
	}

	return s.nightRooms
}
