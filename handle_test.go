package canvas

import (
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestHandle(t *testing.T) *Handle {
	t.Helper()
	c, err := NewContext(NewNonGPUDevice(4, 4, 1, 160))
	if err != nil {
		t.Fatal(err)
	}
	return NewHandle(c)
}

func TestHandleRefCount(t *testing.T) {
	h := newTestHandle(t)
	h2 := h.Clone()
	h3 := h2.Clone()
	if h.Refs() != 3 {
		t.Fatalf("Refs() = %d, want 3", h.Refs())
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	// Closing the same handle twice drops one reference only.
	_ = h.Close()
	if h2.Refs() != 2 {
		t.Errorf("Refs() after Close = %d, want 2", h2.Refs())
	}
	h2.Read(func(c *Context) {
		if c.closed {
			t.Error("context closed while references remain")
		}
	})

	_ = h2.Close()
	_ = h3.Close()
	if h3.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", h3.Refs())
	}
	h3.Read(func(c *Context) {
		if !c.closed {
			t.Error("context open after last Close")
		}
	})
}

func TestGuardReleaseIdempotent(t *testing.T) {
	h := newTestHandle(t)
	defer h.Close()

	r := h.ReadAccess()
	r.Release()
	r.Release()
	w := h.WriteAccess()
	w.Release()
	w.Release()

	// A double unlock would have panicked; the lock must still be usable.
	h.Write(func(c *Context) { c.SetLineWidth(3) })
	h.Read(func(c *Context) {
		if c.LineWidth() != 3 {
			t.Errorf("LineWidth() = %v, want 3", c.LineWidth())
		}
	})
}

func TestHandleReleasesOnPanic(t *testing.T) {
	h := newTestHandle(t)
	defer h.Close()

	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}
	mustPanic("Write", func() { h.Write(func(*Context) { panic("boom") }) })
	mustPanic("Read", func() { h.Read(func(*Context) { panic("boom") }) })

	done := make(chan struct{})
	go func() {
		h.Write(func(*Context) {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock still held after panic")
	}
}

func TestHandleConcurrentReaders(t *testing.T) {
	h := newTestHandle(t)
	defer h.Close()

	r1 := h.ReadAccess()
	r2 := h.Clone().ReadAccess()

	var wrote atomic.Bool
	writerDone := make(chan struct{})
	go func() {
		h.Write(func(c *Context) {
			wrote.Store(true)
			c.SetLineWidth(8)
		})
		close(writerDone)
	}()

	// The writer stalls while both readers hold access.
	time.Sleep(20 * time.Millisecond)
	if wrote.Load() {
		t.Fatal("writer ran while readers held access")
	}
	if r1.Context() != r2.Context() {
		t.Error("cloned handle guards a different context")
	}
	if r1.Context().LineWidth() != 1 {
		t.Error("readers saw a partial write")
	}

	r1.Release()
	r2.Release()
	select {
	case <-writerDone:
	case <-time.After(time.Second):
		t.Fatal("writer never acquired access")
	}
	h.Read(func(c *Context) {
		if c.LineWidth() != 8 {
			t.Errorf("LineWidth() = %v, want 8", c.LineWidth())
		}
	})
}

func TestHandleParallelDraw(t *testing.T) {
	h := newTestHandle(t)
	defer h.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(hh *Handle) {
			defer wg.Done()
			defer hh.Close()
			if i%2 == 0 {
				hh.Write(func(c *Context) { c.FillRect(0, 0, 4, 4) })
			} else {
				hh.Read(func(c *Context) { _ = c.LineWidth() })
			}
		}(h.Clone())
	}
	wg.Wait()
	if h.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", h.Refs())
	}
	if err := h.Resize(6, 6); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	h.Read(func(c *Context) {
		if c.Width() != 6 {
			t.Errorf("Width() = %d, want 6", c.Width())
		}
	})
}

func TestHandleParallelSnapshots(t *testing.T) {
	h := newTestHandle(t)
	defer h.Close()
	h.Write(func(c *Context) {
		c.SetFillStyle("red")
		c.FillRect(0, 0, 4, 4)
	})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(hh *Handle) {
			defer wg.Done()
			defer hh.Close()
			for range 50 {
				if i == 0 {
					hh.Write(func(c *Context) { c.FillRect(0, 0, 1, 1) })
					continue
				}
				hh.Read(func(c *Context) {
					snap := c.SnapshotImage()
					if snap == nil {
						t.Error("SnapshotImage() = nil")
						return
					}
					if got := snap.At(2, 2); got != (color.RGBA{255, 0, 0, 255}) {
						t.Errorf("snapshot pixel = %v, want red", got)
					}
					if px := c.ReadPixelsRaw(); len(px) != 4*4*4 {
						t.Errorf("len(ReadPixelsRaw()) = %d, want 64", len(px))
					}
					if _, ok := c.EncodeSnapshotPNG(); !ok {
						t.Error("EncodeSnapshotPNG() failed")
					}
				})
			}
		}(h.Clone())
	}
	wg.Wait()
}
