package sim

import "context"

// A Result aggregates everything a finished run reports.
type Result struct {
	// Records holds one row per patient admitted after the warm-up, in
	// admission order.
	Records []OutcomeRecord

	// UtilizationCounts[i] is the number of measured ticks with exactly i
	// rooms occupied; UtilizationFractions is the same table normalized by
	// the measurement window.
	UtilizationCounts    []uint64
	UtilizationFractions []float64

	// QueueLengths[c] is the number of class-c patients still waiting when
	// the run ended.
	QueueLengths []int
}

// A Driver owns all state of one simulation run and steps simulated time
// forward one minute at a time. Independent runs get independent Drivers,
// so whole runs can execute in parallel.
type Driver struct {
	cfg      Config
	sampler  Sampler
	schedule Schedule
	queues   *ClassQueueSet
	pool     *Pool
	hist     *Histogram
	records  []OutcomeRecord

	// Progress, if set, is called every progressStride ticks with the
	// number of completed ticks and the run total.
	Progress func(done, total int)
}

const progressStride = 10000

// NewDriver validates the configuration and creates a run with its own
// seeded sampler.
func NewDriver(cfg Config) (*Driver, error) {
	return NewDriverWithSampler(cfg, NewSampler(cfg.Seed))
}

// NewDriverWithSampler creates a run that draws from the given sampler.
func NewDriverWithSampler(cfg Config, sampler Sampler) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		cfg:      cfg,
		sampler:  sampler,
		schedule: NewSchedule(cfg.DayRooms, cfg.NightRooms, cfg.NightLengthHours),
		queues:   NewClassQueueSet(len(cfg.Classes)),
		pool:     NewPool(),
		hist:     NewHistogram(cfg.DayRooms),
	}, nil
}

// TotalTicks returns the run length including the warm-up.
func (d *Driver) TotalTicks() int {
	return d.cfg.WarmupTicks + d.cfg.ExperimentLength
}

// Run executes the whole run and returns its aggregates. The run is bounded
// and always terminates; ctx is only checked between ticks as a cooperative
// abort for interactive use.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	total := d.TotalTicks()

	for tick := 0; tick < total; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d.step(tick)

		if d.Progress != nil && (tick+1)%progressStride == 0 {
			d.Progress(tick+1, total)
		}
	}

	if d.Progress != nil {
		d.Progress(total, total)
	}

	return d.result(), nil
}

// step advances the run by one minute, in strict order: arrivals, releases,
// capacity resolution, priority admissions, utilization sampling. The run
// is warming up until tick reaches WarmupTicks; the queueing dynamics are
// identical in both phases, only measurement is gated.
func (d *Driver) step(tick int) {
	for class := range d.cfg.Classes {
		count := d.sampler.ArrivalCount(d.cfg.Classes[class].ArrivalRate)
		for i := 0; i < count; i++ {
			d.queues.Enqueue(class, tick)
		}
	}

	d.pool.ReleaseDue(tick)

	capacity := d.schedule.CapacityAt(tick)

	d.admit(tick, capacity)

	// Utilization is sampled after this tick's releases and admissions.
	if d.recording(tick) {
		d.hist.Add(d.pool.Occupied())
	}
}

// admit walks the classes in priority order and admits at most one patient
// per class per tick. Higher-priority classes consume capacity first; a
// saturating high-priority class starves the rest, which is the modeled
// behavior.
func (d *Driver) admit(tick, capacity int) {
	for class := range d.cfg.Classes {
		if d.pool.Occupied() >= capacity {
			break
		}

		if d.queues.Len(class) == 0 {
			continue
		}

		if class >= d.cfg.MinDayOnlyClass && !d.schedule.IsDay(tick) {
			continue
		}

		arrival := d.queues.Pop(class)
		wait := tick - arrival
		service := d.sampler.ServiceDuration(
			d.cfg.Classes[class].ServiceMu,
			d.cfg.Classes[class].ServiceSigma,
		)

		if d.recording(arrival) {
			d.records = append(d.records, OutcomeRecord{
				Class:   class,
				Arrival: arrival - d.cfg.WarmupTicks,
				Period:  d.periodAt(arrival),
				Wait:    wait,
				Service: service,
			})
		}

		d.pool.Admit(tick, service, d.cfg.CleaningTime, capacity)
	}
}

// recording reports whether a tick falls in the measured part of the run.
func (d *Driver) recording(tick int) bool {
	return tick >= d.cfg.WarmupTicks
}

func (d *Driver) periodAt(tick int) Period {
	if d.schedule.IsDay(tick) {
		return Day
	}

	return Night
}

func (d *Driver) result() *Result {
	lengths := make([]int, d.queues.NumClasses())
	for class := range lengths {
		lengths[class] = d.queues.Len(class)
	}

	return &Result{
		Records:              d.records,
		UtilizationCounts:    d.hist.Counts(),
		UtilizationFractions: d.hist.Fractions(),
		QueueLengths:         lengths,
	}
}
