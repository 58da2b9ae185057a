package param

// Diffable is implemented by node parameter records. Diff compares the
// record against a previous value and returns one patch per changed field,
// in field-declaration order. Diffing identical records returns nothing.
type Diffable[R, P any] interface {
	Diff(prev R) []P
}

// Handle owns the control-side copy of a node's parameter record and the
// producer end of its patch queue. Edits accumulate locally until Sync,
// which diffs against the last delivered record and pushes the resulting
// patches as one batch.
//
// A Handle belongs to a single control goroutine; it is the producer in
// the queue's single-producer contract.
type Handle[R Diffable[R, P], P any] struct {
	current  R
	lastSent R
	queue    *Queue[P]
}

// NewHandle returns a handle whose record starts at initial, with nothing
// pending. The processor mirroring the record must be constructed from the
// same initial value.
func NewHandle[R Diffable[R, P], P any](initial R, q *Queue[P]) *Handle[R, P] {
	return &Handle[R, P]{current: initial, lastSent: initial, queue: q}
}

// Params returns the current (possibly not yet synced) record.
func (h *Handle[R, P]) Params() R {
	return h.current
}

// Set replaces the whole record.
func (h *Handle[R, P]) Set(next R) {
	h.current = next
}

// Mutate edits the record in place.
func (h *Handle[R, P]) Mutate(fn func(*R)) {
	fn(&h.current)
}

// Sync diffs the record against the last delivered state and pushes the
// patch batch. The batch goes out atomically: if the queue lacks room for
// all of it, nothing is sent and Sync reports false, leaving the pending
// changes to be re-diffed on a later call. A field edited several times
// between syncs therefore always arrives with its newest value, never a
// stale intermediate.
func (h *Handle[R, P]) Sync() bool {
	patches := h.current.Diff(h.lastSent)
	if len(patches) == 0 {
		return true
	}

	if h.queue.Free() < len(patches) {
		return false
	}

	for _, p := range patches {
		// Cannot fail: capacity was checked and this is the only producer.
		h.queue.Push(p)
	}
	h.lastSent = h.current
	return true
}
