package debugui

import "time"

// History is a fixed-size ring of samples, oldest overwritten first.
type History struct {
	samples []float32
	next    int
	filled  bool
}

// NewHistory returns a ring holding size samples.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

// Push records v.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// PushDuration records d in milliseconds.
func (h *History) PushDuration(d time.Duration) {
	h.Push(float32(d.Seconds() * 1000))
}

// Ordered returns the samples oldest first. Slots never written are zero
// and come first.
func (h *History) Ordered() []float32 {
	out := make([]float32, len(h.samples))
	n := copy(out, h.samples[h.next:])
	copy(out[n:], h.samples[:h.next])
	return out
}

// Avg is the mean of the recorded samples.
func (h *History) Avg() float32 {
	count := h.next
	if h.filled {
		count = len(h.samples)
	}
	if count == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:count] {
		sum += v
	}
	return sum / float32(count)
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

// NewFrameTimer starts timing from now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Delta returns the time since the previous call.
func (ft *FrameTimer) Delta() time.Duration {
	now := ft.now()
	delta := now.Sub(ft.last)
	ft.last = now
	return delta
}
