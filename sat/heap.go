package sat

// ActivityHeap is a binary max-heap of variables keyed by activity score,
// giving the search quick access to the most active unassigned variable.
// Variables popped for branching are re-pushed when the trail unrolls.
type ActivityHeap struct {
	activityInc float64
	activity    []float64
	arr         []int
	location    []int // -1 for variables not currently in the heap
}

// activityDecayFactor grows the increment on every decay, which is equivalent
// to exponentially decaying all existing scores.
const activityDecayFactor = 1.05

// activityRescaleLimit triggers a global rescale before scores overflow.
const activityRescaleLimit = 1e100

// NewActivityHeap creates a heap containing all variables with zero activity.
func NewActivityHeap(varCount int) *ActivityHeap {
	h := &ActivityHeap{
		activityInc: 1.0,
		activity:    make([]float64, varCount),
		arr:         make([]int, 0, varCount),
		location:    make([]int, varCount),
	}
	for i := range h.location {
		h.location[i] = -1
	}
	for i := 0; i < varCount; i++ {
		h.Push(i)
	}
	return h
}

func (h *ActivityHeap) less(x, y int) bool { return h.activity[x] > h.activity[y] }

func (h *ActivityHeap) largerChild(i int) int {
	l, r := 2*i+1, 2*i+2
	if r < len(h.arr) && h.less(h.arr[r], h.arr[l]) {
		return r
	}
	return l
}

func (h *ActivityHeap) percolateUp(i int) {
	x := h.arr[i]
	for p := (i - 1) / 2; i != 0 && h.less(x, h.arr[p]); i, p = p, (p-1)/2 {
		h.arr[i] = h.arr[p]
		h.location[h.arr[i]] = i
	}
	h.arr[i] = x
	h.location[x] = i
}

func (h *ActivityHeap) percolateDown(i int) {
	x := h.arr[i]
	for c := h.largerChild(i); c < len(h.arr) && h.less(h.arr[c], x); i, c = c, h.largerChild(c) {
		h.arr[i] = h.arr[c]
		h.location[h.arr[i]] = i
	}
	h.arr[i] = x
	h.location[x] = i
}

// Empty reports whether the heap contains no variables.
func (h *ActivityHeap) Empty() bool { return len(h.arr) == 0 }

// Size returns the number of variables currently in the heap.
func (h *ActivityHeap) Size() int { return len(h.arr) }

// Contains reports whether the variable is currently in the heap.
func (h *ActivityHeap) Contains(v int) bool { return h.location[v] != -1 }

// Pop removes and returns the most active variable.
func (h *ActivityHeap) Pop() int {
	r := h.arr[0]
	h.location[r] = -1
	h.arr[0] = h.arr[len(h.arr)-1]
	h.arr = h.arr[:len(h.arr)-1]
	if len(h.arr) > 0 {
		h.percolateDown(0)
	}
	return r
}

// Push adds a variable to the heap, or rebalances it if already present.
func (h *ActivityHeap) Push(v int) {
	if h.Contains(v) {
		h.percolateUp(h.location[v])
		h.percolateDown(h.location[v])
	} else {
		h.arr = append(h.arr, v)
		h.percolateUp(len(h.arr) - 1)
	}
}

// Activity returns the current score of a variable.
func (h *ActivityHeap) Activity(v int) float64 { return h.activity[v] }

// Bump increases the activity of a variable and rebalances its heap position.
// Variables not currently in the heap keep their new score for when they are
// re-pushed.
func (h *ActivityHeap) Bump(v int) {
	h.activity[v] += h.activityInc
	if h.activity[v] > activityRescaleLimit {
		h.rescale()
	}
	if h.Contains(v) {
		h.percolateUp(h.location[v])
		h.percolateDown(h.location[v])
	}
}

// Decay devalues all existing activities relative to future bumps. The
// ordering of current scores is untouched.
func (h *ActivityHeap) Decay() {
	h.activityInc *= activityDecayFactor
	if h.activityInc > activityRescaleLimit {
		h.rescale()
	}
}

func (h *ActivityHeap) rescale() {
	h.activityInc *= 1e-100
	for i := range h.activity {
		h.activity[i] *= 1e-100
	}
}
