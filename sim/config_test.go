package sim

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.DayRooms = 4
	cfg.Classes = []ClassParams{
		{ArrivalRate: 0.0016, ServiceMu: 5.0, ServiceSigma: 0.58},
		{ArrivalRate: 0.0032, ServiceMu: 4.96, ServiceSigma: 0.68},
	}
	cfg.ExperimentLength = 1000

	return cfg
}

var _ = Describe("Config", func() {
	It("should accept a valid configuration", func() {
		cfg := validConfig()

		Expect(cfg.Validate()).To(Succeed())
	})

	It("should default the night rooms to the day rooms", func() {
		cfg := validConfig()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.NightRooms).To(Equal(cfg.DayRooms))
	})

	It("should keep an explicit night room count", func() {
		cfg := validConfig()
		cfg.NightRooms = 2

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.NightRooms).To(Equal(2))
	})

	It("should allow zero night rooms", func() {
		cfg := validConfig()
		cfg.NightRooms = 0

		Expect(cfg.Validate()).To(Succeed())
	})

	It("should reject a non-positive day room count", func() {
		cfg := validConfig()
		cfg.DayRooms = 0

		err := cfg.Validate()
		var cfgErr *ConfigError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
		Expect(err.(*ConfigError).Field).To(Equal("day_rooms"))
	})

	It("should reject more night rooms than day rooms", func() {
		cfg := validConfig()
		cfg.NightRooms = 5

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.(*ConfigError).Field).To(Equal("night_rooms"))
	})

	It("should reject an empty class list", func() {
		cfg := validConfig()
		cfg.Classes = nil

		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should reject negative class parameters", func() {
		cfg := validConfig()
		cfg.Classes[1].ServiceSigma = -0.1

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.(*ConfigError).Field).To(Equal("classes[1].service_sigma"))
	})

	It("should reject a negative night length", func() {
		cfg := validConfig()
		cfg.NightLengthHours = -1

		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should reject a negative warm-up", func() {
		cfg := validConfig()
		cfg.WarmupTicks = -1

		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should reject a negative cleaning time", func() {
		cfg := validConfig()
		cfg.CleaningTime = -1

		Expect(cfg.Validate()).To(HaveOccurred())
	})
})

var _ = Describe("LoadConfig", func() {
	It("should overlay the file on the defaults", func() {
		workload := `
day_rooms: 6
classes:
  - arrival_rate: 0.001
    service_mu: 5.0
    service_sigma: 0.6
experiment_length: 500
`
		path := filepath.Join(GinkgoT().TempDir(), "workload.yaml")
		Expect(os.WriteFile(path, []byte(workload), 0o644)).To(Succeed())

		cfg, err := LoadConfig(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(cfg.DayRooms).To(Equal(6))
		Expect(cfg.ExperimentLength).To(Equal(500))

		// Omitted keys keep their defaults.
		Expect(cfg.NightRooms).To(Equal(NightRoomsUnset))
		Expect(cfg.NightLengthHours).To(Equal(8.0))
		Expect(cfg.CleaningTime).To(Equal(60))
		Expect(cfg.MinDayOnlyClass).To(Equal(3))
	})

	It("should fail on a missing file", func() {
		_, err := LoadConfig("no_such_workload.yaml")

		Expect(err).To(HaveOccurred())
	})
})
