package param

// DefaultQueueCapacity is used by NewQueue when the requested capacity is
// not positive.
const DefaultQueueCapacity = 64

// Queue is a bounded single-producer single-consumer patch transport. The
// producer (control side) pushes without ever blocking; the consumer
// (rendering side) drains the whole backlog at the start of a block
// without blocking or allocating. The queue itself never drops elements:
// when full, Push reports failure and the producer decides what to do,
// which for Handle means withholding the batch and re-diffing later.
type Queue[P any] struct {
	ch chan P
}

// NewQueue returns a queue holding at most capacity pending patches.
// Non-positive capacities fall back to DefaultQueueCapacity.
func NewQueue[P any](capacity int) *Queue[P] {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue[P]{ch: make(chan P, capacity)}
}

// Push enqueues p without blocking and reports whether it was accepted.
// Producer side only.
func (q *Queue[P]) Push(p P) bool {
	select {
	case q.ch <- p:
		return true
	default:
		return false
	}
}

// Free returns the number of patches that can currently be pushed without
// failure. From the producer's point of view the value is a lower bound:
// concurrent draining only increases it.
func (q *Queue[P]) Free() int {
	return cap(q.ch) - len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue[P]) Cap() int {
	return cap(q.ch)
}

// Len returns the number of pending patches.
func (q *Queue[P]) Len() int {
	return len(q.ch)
}

// Drain appends every pending patch to dst[:0] in arrival order and
// returns the result. It never blocks; with cap(dst) at least Cap it never
// allocates. Consumer side only.
func (q *Queue[P]) Drain(dst []P) []P {
	dst = dst[:0]
	for {
		select {
		case p := <-q.ch:
			dst = append(dst, p)
		default:
			return dst
		}
	}
}
