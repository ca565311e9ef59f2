package sim

import "log"

// A ClassQueueSet holds one FIFO queue of arrival ticks per patient class.
// Arrivals are appended in tick order, so the head of each queue is always
// the longest-waiting patient. Removal is strictly by position; two patients
// of the same class arriving in the same minute can never shadow each other.
type ClassQueueSet struct {
	queues [][]int
}

// NewClassQueueSet creates an empty queue per class.
func NewClassQueueSet(numClasses int) *ClassQueueSet {
	return &ClassQueueSet{
		queues: make([][]int, numClasses),
	}
}

// NumClasses returns the number of queues.
func (s *ClassQueueSet) NumClasses() int {
	return len(s.queues)
}

// Enqueue appends an arrival tick to the class's queue.
func (s *ClassQueueSet) Enqueue(class, tick int) {
	s.queues[class] = append(s.queues[class], tick)
}

// Len returns how many patients of the class are waiting.
func (s *ClassQueueSet) Len(class int) int {
	return len(s.queues[class])
}

// Peek returns the earliest arrival tick of the class without removing it.
// The second return value is false when the queue is empty.
func (s *ClassQueueSet) Peek(class int) (int, bool) {
	if len(s.queues[class]) == 0 {
		return 0, false
	}

	return s.queues[class][0], true
}

// Pop removes and returns the earliest arrival tick of the class. Popping an
// empty queue means the admission logic is broken and is fatal.
func (s *ClassQueueSet) Pop(class int) int {
	if len(s.queues[class]) == 0 {
		log.Panicf("pop from empty queue of class %d", class)
	}

	tick := s.queues[class][0]
	s.queues[class] = s.queues[class][1:]

	return tick
}
