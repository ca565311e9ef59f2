package sim

import "log"

// A Pool is the set of rooms currently occupied, each recorded as the tick
// at which it frees up again (end of surgery plus cleaning). The set is
// bounded by the room count, so linear scans are fine.
type Pool struct {
	releaseTicks []int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Occupied returns the number of rooms currently in use.
func (p *Pool) Occupied() int {
	return len(p.releaseTicks)
}

// ReleaseDue frees every room whose release tick equals the current tick.
func (p *Pool) ReleaseDue(tick int) {
	kept := p.releaseTicks[:0]
	for _, release := range p.releaseTicks {
		if release != tick {
			kept = append(kept, release)
		}
	}

	p.releaseTicks = kept
}

// Admit occupies a room until the surgery and the cleaning afterwards are
// done. The scheduler checks capacity before calling; admitting a patient
// into a full pool is fatal.
func (p *Pool) Admit(tick, serviceDuration, cleaningTime, capacity int) {
	if len(p.releaseTicks) >= capacity {
		log.Panicf("admission beyond capacity %d at tick %d", capacity, tick)
	}

	p.releaseTicks = append(p.releaseTicks, tick+serviceDuration+cleaningTime)
}
