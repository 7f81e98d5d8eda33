package tracker

// meanWindow is a fixed-capacity rolling mean over recent values.
type meanWindow struct {
	buf  []float64
	n    int
	head int
}

func newMeanWindow(size int) *meanWindow {
	if size <= 0 {
		size = 1
	}
	return &meanWindow{buf: make([]float64, size)}
}

func (w *meanWindow) push(v float64) {
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	if w.n < len(w.buf) {
		w.n++
	}
}

func (w *meanWindow) mean() float64 {
	if w.n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < w.n; i++ {
		sum += w.buf[i]
	}
	return sum / float64(w.n)
}

func (w *meanWindow) reset() {
	w.n = 0
	w.head = 0
}

// ratioWindow tracks the fraction of true observations over recent
// samples.
type ratioWindow struct {
	buf  []bool
	n    int
	head int
}

func newRatioWindow(size int) *ratioWindow {
	if size <= 0 {
		size = 1
	}
	return &ratioWindow{buf: make([]bool, size)}
}

func (w *ratioWindow) push(v bool) {
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	if w.n < len(w.buf) {
		w.n++
	}
}

func (w *ratioWindow) ratio() float64 {
	if w.n == 0 {
		return 0
	}
	count := 0
	for i := 0; i < w.n; i++ {
		if w.buf[i] {
			count++
		}
	}
	return float64(count) / float64(w.n)
}
