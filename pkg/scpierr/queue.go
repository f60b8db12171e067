package scpierr

// DefaultQueueCapacity is the default error queue depth.
const DefaultQueueCapacity = 10

// Queue is a bounded FIFO of SCPI errors.
// When the queue is full the newest entry is replaced by
// -350,"Queue overflow".
//
// Queue is not safe for concurrent use; the interpreter owns it and
// runs single-threaded.
type Queue struct {
	errs []*Error
	cap  int
}

// NewQueue creates an error queue with the given capacity.
// A capacity <= 0 uses DefaultQueueCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{cap: capacity}
}

// Push appends an error to the queue.
// Nil errors are ignored.
func (q *Queue) Push(err *Error) {
	if err == nil {
		return
	}
	if len(q.errs) >= q.cap {
		q.errs[len(q.errs)-1] = New(CodeQueueOverflow)
		return
	}
	q.errs = append(q.errs, err)
}

// Pop removes and returns the oldest error.
// An empty queue returns 0,"No error".
func (q *Queue) Pop() *Error {
	if len(q.errs) == 0 {
		return New(CodeNoError)
	}
	err := q.errs[0]
	q.errs = q.errs[1:]
	return err
}

// Len returns the number of queued errors.
func (q *Queue) Len() int {
	return len(q.errs)
}

// Clear discards all queued errors.
func (q *Queue) Clear() {
	q.errs = nil
}
