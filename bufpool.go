package regionz

// recordCapacity covers the longest lifecycle line with room to spare;
// annotation labels longer than this grow the buffer once.
const recordCapacity = 128

// maxPooledCapacity keeps oversized annotation buffers out of the pool.
const maxPooledCapacity = 4096

// BufPool is a bounded free-list of record buffers.
// Get never blocks: an empty pool allocates. Put never blocks: a full pool
// drops the buffer.
type BufPool struct {
	bufs chan []byte
}

// NewBufPool creates a pool holding at most capacity idle buffers.
func NewBufPool(capacity int) *BufPool {
	if capacity < 1 {
		capacity = 1
	}
	return &BufPool{bufs: make(chan []byte, capacity)}
}

// Get returns an empty buffer.
func (p *BufPool) Get() []byte {
	select {
	case buf := <-p.bufs:
		return buf[:0]
	default:
		// Pool empty, allocate directly (fallback for burst load).
		return make([]byte, 0, recordCapacity)
	}
}

// Put returns buf to the pool for reuse.
func (p *BufPool) Put(buf []byte) {
	if cap(buf) > maxPooledCapacity {
		return
	}
	select {
	case p.bufs <- buf[:0]:
	default:
	}
}

// Idle returns the number of buffers waiting in the pool.
func (p *BufPool) Idle() int {
	return len(p.bufs)
}
