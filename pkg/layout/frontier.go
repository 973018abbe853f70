package layout

import "github.com/gammazero/deque"

// FrontierStats reports the lifetime counters of an engine's vertex queue.
type FrontierStats struct {
	Pending  int // vertices waiting in the queue
	Enqueued int // vertices ever pushed since the last reset
	Dequeued int // vertices consumed since the last reset
}

// frontier is the FIFO of candidate vertices.
type frontier struct {
	q        deque.Deque[Vertex]
	enqueued int
	dequeued int
}

func (f *frontier) push(vs ...Vertex) {
	for _, v := range vs {
		f.q.PushBack(v)
	}
	f.enqueued += len(vs)
}

func (f *frontier) pop() (Vertex, bool) {
	if f.q.Len() == 0 {
		return Vertex{}, false
	}
	f.dequeued++
	return f.q.PopFront(), true
}

// unpop puts consumed vertices back at the head of the queue in their
// original order.
func (f *frontier) unpop(vs []Vertex) {
	for i := len(vs) - 1; i >= 0; i-- {
		f.q.PushFront(vs[i])
	}
	f.dequeued -= len(vs)
}

func (f *frontier) clear() {
	f.q.Clear()
	f.enqueued = 0
	f.dequeued = 0
}

func (f *frontier) stats() FrontierStats {
	return FrontierStats{Pending: f.q.Len(), Enqueued: f.enqueued, Dequeued: f.dequeued}
}
