package facemesh

import (
	"context"
	"sync"

	"github.com/StutiRuparel/FocusMind/pkg/landmark"
	"github.com/StutiRuparel/FocusMind/pkg/tracker"
)

// Mock is a scripted landmark source. Frames come back in the order
// they were queued; a drained mock yields face-absent frames.
type Mock struct {
	mu    sync.Mutex
	queue []landmark.Frame
}

var _ tracker.Source = (*Mock)(nil)

// NewMock returns a mock preloaded with the given frames.
func NewMock(frames ...landmark.Frame) *Mock {
	return &Mock{queue: append([]landmark.Frame(nil), frames...)}
}

// Enqueue appends a frame to the script.
func (m *Mock) Enqueue(f landmark.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, f)
}

// Remaining reports how many scripted frames are left.
func (m *Mock) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Next pops the next scripted frame.
func (m *Mock) Next(ctx context.Context) (landmark.Frame, error) {
	if err := ctx.Err(); err != nil {
		return landmark.Frame{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return landmark.Frame{}, nil
	}
	f := m.queue[0]
	m.queue = m.queue[1:]
	return f, nil
}
