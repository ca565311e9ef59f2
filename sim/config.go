package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NightRoomsUnset makes Validate default the night room count to the day
// room count, mirroring an omitted `night_rooms` key in a workload file.
const NightRoomsUnset = -1

// ClassParams describes the workload of one patient class: the expected
// number of arrivals per minute, and the location and scale of the
// log-normal surgery duration in minutes.
type ClassParams struct {
	ArrivalRate  float64 `yaml:"arrival_rate"`
	ServiceMu    float64 `yaml:"service_mu"`
	ServiceSigma float64 `yaml:"service_sigma"`
}

// Config carries every parameter of a single simulation run. The class
// ordinal doubles as the admission priority: class 0 is served first.
// Workload parameters always come in through this struct; the engine holds
// no built-in rates.
type Config struct {
	DayRooms   int `yaml:"day_rooms"`
	NightRooms int `yaml:"night_rooms"`

	Classes []ClassParams `yaml:"classes"`

	// Classes with ordinal >= MinDayOnlyClass are only admitted while the
	// schedule is in day mode.
	MinDayOnlyClass int `yaml:"min_dayonly_class"`

	NightLengthHours float64 `yaml:"night_length_hours"`

	// WarmupTicks is discarded from all measurements so queue lengths can
	// reach steady state first.
	WarmupTicks      int `yaml:"warmup_ticks"`
	ExperimentLength int `yaml:"experiment_length"`

	// CleaningTime is added after every surgery before the room frees up.
	CleaningTime int `yaml:"cleaning_time"`

	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns a Config with the default knobs set. Unmarshal a
// workload file on top of it so omitted keys keep their defaults.
func DefaultConfig() Config {
	return Config{
		NightRooms:       NightRoomsUnset,
		MinDayOnlyClass:  3,
		NightLengthHours: 8,
		WarmupTicks:      100000,
		ExperimentLength: 2000000,
		CleaningTime:     60,
	}
}

// LoadConfig reads a yaml workload file on top of the defaults. The result
// is not yet validated; NewDriver does that.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read workload file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse workload file: %w", err)
	}

	return cfg, nil
}

// A ConfigError reports a configuration field that failed validation. It is
// always raised before any simulation state is created.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Validate checks every field eagerly and resolves the night room default.
// It returns a *ConfigError naming the first offending field.
func (c *Config) Validate() error {
	if c.DayRooms <= 0 {
		return &ConfigError{"day_rooms", "must be positive"}
	}

	if c.NightRooms == NightRoomsUnset {
		c.NightRooms = c.DayRooms
	}

	if c.NightRooms < 0 {
		return &ConfigError{"night_rooms", "must be non-negative"}
	}

	if c.NightRooms > c.DayRooms {
		return &ConfigError{"night_rooms", "must not exceed day_rooms"}
	}

	if len(c.Classes) == 0 {
		return &ConfigError{"classes", "must define at least one class"}
	}

	for i, class := range c.Classes {
		if class.ArrivalRate < 0 {
			return &ConfigError{
				fmt.Sprintf("classes[%d].arrival_rate", i),
				"must be non-negative",
			}
		}

		if class.ServiceMu < 0 {
			return &ConfigError{
				fmt.Sprintf("classes[%d].service_mu", i),
				"must be non-negative",
			}
		}

		if class.ServiceSigma < 0 {
			return &ConfigError{
				fmt.Sprintf("classes[%d].service_sigma", i),
				"must be non-negative",
			}
		}
	}

	if c.MinDayOnlyClass < 0 {
		return &ConfigError{"min_dayonly_class", "must be non-negative"}
	}

	if c.NightLengthHours < 0 {
		return &ConfigError{"night_length_hours", "must be non-negative"}
	}

	if c.NightLengthHours > 24 {
		return &ConfigError{"night_length_hours", "must not exceed 24"}
	}

	if c.WarmupTicks < 0 {
		return &ConfigError{"warmup_ticks", "must be non-negative"}
	}

	if c.ExperimentLength < 0 {
		return &ConfigError{"experiment_length", "must be non-negative"}
	}

	if c.CleaningTime < 0 {
		return &ConfigError{"cleaning_time", "must be non-negative"}
	}

	return nil
}
