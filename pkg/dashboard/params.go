package dashboard

import (
	"sync"
	"time"
)

func NewParams() *Params {
	return &Params{
		ErrorWait: 10 * time.Second,
		wakeup:    make(chan struct{}, 1),
	}
}

// Params is the runtime state shared by the refresh loop and the bot.
type Params struct {
	l sync.RWMutex

	ErrorWait time.Duration

	wakeup chan struct{}
	paused bool
	next   time.Time
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

// Wakeup resumes a paused loop and asks for an immediate redraw.
func (p *Params) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

// Next is when the loop plans to draw again.
func (p *Params) Next() time.Time {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.next
}

func (p *Params) setNext(t time.Time) {
	p.l.Lock()
	defer p.l.Unlock()
	p.next = t
}

// untilMidnight is the wait from now to the start of the next local day.
func untilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
}
