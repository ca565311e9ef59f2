package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schedule", func() {
	Context("with an eight hour night", func() {
		schedule := NewSchedule(4, 2, 8)

		It("should start each day in night mode", func() {
			Expect(schedule.IsDay(0)).To(BeFalse())
			Expect(schedule.IsDay(479)).To(BeFalse())
			Expect(schedule.IsDay(MinutesPerDay)).To(BeFalse())
		})

		It("should switch to day mode at the window boundary", func() {
			Expect(schedule.IsDay(480)).To(BeTrue())
			Expect(schedule.IsDay(1439)).To(BeTrue())
			Expect(schedule.IsDay(MinutesPerDay + 480)).To(BeTrue())
		})

		It("should resolve capacity from the time of day", func() {
			Expect(schedule.CapacityAt(0)).To(Equal(2))
			Expect(schedule.CapacityAt(479)).To(Equal(2))
			Expect(schedule.CapacityAt(480)).To(Equal(4))
			Expect(schedule.CapacityAt(1439)).To(Equal(4))
			Expect(schedule.CapacityAt(MinutesPerDay)).To(Equal(2))
		})
	})

	Context("with no night window", func() {
		schedule := NewSchedule(3, 1, 0)

		It("should always be day", func() {
			Expect(schedule.IsDay(0)).To(BeTrue())
			Expect(schedule.CapacityAt(0)).To(Equal(3))
			Expect(schedule.CapacityAt(MinutesPerDay - 1)).To(Equal(3))
		})
	})

	Context("with a fractional night length", func() {
		schedule := NewSchedule(2, 1, 7.5)

		It("should round the window to whole minutes", func() {
			Expect(schedule.IsDay(449)).To(BeFalse())
			Expect(schedule.IsDay(450)).To(BeTrue())
		})
	})
})
