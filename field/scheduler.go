package field

// FrameSource delivers display refresh callbacks. Each requested callback
// runs once, on the host's event goroutine, at the next refresh.
type FrameSource interface {
	RequestFrame(fn func())
}

// FrameQueue is a FrameSource pumped manually by the host loop.
type FrameQueue struct {
	pending []func()
	spare   []func()
}

// RequestFrame implements FrameSource.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of callbacks waiting for the next refresh.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// Flush runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while flushing wait for the next Flush.
func (q *FrameQueue) Flush() int {
	batch := q.pending
	q.pending = q.spare[:0]
	for i, fn := range batch {
		fn()
		batch[i] = nil
	}
	q.spare = batch[:0]
	return len(batch)
}

// Scheduler runs a repeating cycle on a FrameSource.
// Every Start and Stop bumps the generation; a callback scheduled under an
// older generation does nothing when it finally fires.
type Scheduler struct {
	frames  FrameSource
	cycle   func()
	gen     uint64
	running bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(frames FrameSource, cycle func()) *Scheduler {
	return &Scheduler{frames: frames, cycle: cycle}
}

// Start schedules the first cycle. No-op while running.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.gen++
	s.request(s.gen)
}

// Stop cancels the pending cycle. No-op while stopped.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.gen++
}

// Running reports whether a cycle is scheduled.
func (s *Scheduler) Running() bool {
	return s.running
}

// Generation returns the current generation id.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

func (s *Scheduler) request(gen uint64) {
	s.frames.RequestFrame(func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	if gen != s.gen {
		return
	}
	s.cycle()
	// The cycle may have stopped or restarted us
	if gen == s.gen {
		s.request(gen)
	}
}
