package dashboard

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"weatherpaper/pkg/canvas"
)

func NewHistory() *History {
	return &History{max: 3}
}

// History keeps the last few frames handed to the panel.
type History struct {
	l     sync.RWMutex
	max   int
	items []*Frame
}

type Frame struct {
	At      time.Time
	Source  string
	Samples int
	Canvas  *canvas.Canvas
	// Err is set for banner frames drawn after a failed fetch.
	Err error
}

func (h *History) Add(f *Frame) {
	h.l.Lock()
	defer h.l.Unlock()
	h.items = append(h.items, f)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*Frame {
	h.l.RLock()
	defer h.l.RUnlock()
	return append([]*Frame(nil), h.items...)
}

func (h *History) Curr() *Frame {
	h.l.RLock()
	defer h.l.RUnlock()
	f, _ := lo.Last(h.items)
	return f
}

func (h *History) Prev() *Frame {
	h.l.RLock()
	defer h.l.RUnlock()
	f, _ := lo.Nth(h.items, -2)
	return f
}
