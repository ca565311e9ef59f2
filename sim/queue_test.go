package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassQueueSet", func() {
	var queues *ClassQueueSet

	BeforeEach(func() {
		queues = NewClassQueueSet(3)
	})

	It("should report the number of classes", func() {
		Expect(queues.NumClasses()).To(Equal(3))
	})

	It("should pop arrivals in FIFO order", func() {
		ticks := []int{3, 7, 7, 12, 40}
		for _, t := range ticks {
			queues.Enqueue(1, t)
		}

		for _, t := range ticks {
			Expect(queues.Pop(1)).To(Equal(t))
		}
		Expect(queues.Len(1)).To(Equal(0))
	})

	It("should remove the head by position when duplicates exist", func() {
		// Two same-minute arrivals followed by a later one. The first pop
		// must shrink the front, leaving the duplicate at the head.
		queues.Enqueue(0, 5)
		queues.Enqueue(0, 5)
		queues.Enqueue(0, 9)

		Expect(queues.Pop(0)).To(Equal(5))

		head, ok := queues.Peek(0)
		Expect(ok).To(BeTrue())
		Expect(head).To(Equal(5))
		Expect(queues.Len(0)).To(Equal(2))
	})

	It("should keep classes independent", func() {
		queues.Enqueue(0, 1)
		queues.Enqueue(2, 2)

		Expect(queues.Len(0)).To(Equal(1))
		Expect(queues.Len(1)).To(Equal(0))
		Expect(queues.Len(2)).To(Equal(1))

		Expect(queues.Pop(2)).To(Equal(2))
		Expect(queues.Len(0)).To(Equal(1))
	})

	It("should survive interleaved enqueues and pops", func() {
		queues.Enqueue(0, 1)
		queues.Enqueue(0, 2)
		Expect(queues.Pop(0)).To(Equal(1))
		queues.Enqueue(0, 3)
		Expect(queues.Pop(0)).To(Equal(2))
		Expect(queues.Pop(0)).To(Equal(3))
	})

	It("should peek without mutation", func() {
		queues.Enqueue(1, 8)

		for i := 0; i < 3; i++ {
			head, ok := queues.Peek(1)
			Expect(ok).To(BeTrue())
			Expect(head).To(Equal(8))
		}
		Expect(queues.Len(1)).To(Equal(1))
	})

	It("should report empty on peek", func() {
		_, ok := queues.Peek(0)
		Expect(ok).To(BeFalse())
	})

	It("should panic when popping an empty queue", func() {
		Expect(func() { queues.Pop(0) }).To(Panic())
	})
})
