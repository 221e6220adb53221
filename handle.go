package canvas

import (
	"sync"
	"sync/atomic"
)

// Handle is a shared, reference-counted owner of one Context. Any number
// of readers or one writer may use the Context at a time.
//
// Clone shares the Context; Close drops one reference and closes the
// Context when the last reference goes.
type Handle struct {
	s      *shared
	closed atomic.Bool
}

type shared struct {
	mu   sync.RWMutex
	ctx  *Context
	refs atomic.Int64
}

// NewHandle takes ownership of ctx.
func NewHandle(ctx *Context) *Handle {
	s := &shared{ctx: ctx}
	s.refs.Store(1)
	return &Handle{s: s}
}

// Clone returns a new reference to the same Context.
func (h *Handle) Clone() *Handle {
	h.s.refs.Add(1)
	return &Handle{s: h.s}
}

// Refs returns the number of live references.
func (h *Handle) Refs() int {
	return int(h.s.refs.Load())
}

// Close drops this reference. The Context is closed, under the write lock,
// when the last reference is closed. Close is idempotent.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	if h.s.refs.Add(-1) > 0 {
		return nil
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.ctx.Close()
}

// ReadGuard holds shared access to a Context. Several ReadGuards may be
// held at once, so only these methods may be called through it:
//
//   - SnapshotImage, EncodeSnapshotPNG and DrawOntoSurface
//   - ReadPixelsRaw, ReadPixelsAsBitmap, ReadPixelsAsImage and GetImageData
//   - Flush
//   - Device, Width, Height, State, StateDepth, FontColor, MeasureText,
//     ResolvedDirection, ResolvedTextAlign and the attribute getters
//
// Drawing, setters, Save, Restore, Clear and Resize need a WriteGuard.
type ReadGuard struct {
	s    *shared
	once sync.Once
}

// Context returns the guarded Context.
func (g *ReadGuard) Context() *Context { return g.s.ctx }

// Release gives up access. Release is idempotent.
func (g *ReadGuard) Release() {
	g.once.Do(g.s.mu.RUnlock)
}

// WriteGuard holds exclusive access to a Context.
type WriteGuard struct {
	s    *shared
	once sync.Once
}

// Context returns the guarded Context.
func (g *WriteGuard) Context() *Context { return g.s.ctx }

// Release gives up access. Release is idempotent.
func (g *WriteGuard) Release() {
	g.once.Do(g.s.mu.Unlock)
}

// ReadAccess blocks until shared access is available.
//
//	g := h.ReadAccess()
//	defer g.Release()
func (h *Handle) ReadAccess() *ReadGuard {
	h.s.mu.RLock()
	return &ReadGuard{s: h.s}
}

// WriteAccess blocks until exclusive access is available.
func (h *Handle) WriteAccess() *WriteGuard {
	h.s.mu.Lock()
	return &WriteGuard{s: h.s}
}

// Read runs fn with shared access. Access is released even if fn panics.
func (h *Handle) Read(fn func(*Context)) {
	g := h.ReadAccess()
	defer g.Release()
	fn(g.Context())
}

// Write runs fn with exclusive access. Access is released even if fn
// panics.
func (h *Handle) Write(fn func(*Context)) {
	g := h.WriteAccess()
	defer g.Release()
	fn(g.Context())
}

// Resize resizes the Context under exclusive access.
func (h *Handle) Resize(width, height float32) error {
	g := h.WriteAccess()
	defer g.Release()
	return g.Context().Resize(width, height)
}
