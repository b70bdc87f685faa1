package logging

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Entry is one auxiliary activity record (logins, automated applications,
// preference changes). Entries are advisory; losing one never fails a
// request.
type Entry struct {
	UserID string
	Action string
	Detail string
	At     time.Time
}

// ActivityLog feeds entries through a bounded channel to a single worker.
// When the channel is full the entry is dropped and counted; Record never
// blocks a request handler.
type ActivityLog struct {
	mu      sync.RWMutex
	ch      chan Entry
	log     *slog.Logger
	dropped atomic.Uint64
	wg      sync.WaitGroup
	closed  bool
}

func NewActivityLog(log *slog.Logger, buffer int) *ActivityLog {
	if buffer <= 0 {
		buffer = 256
	}
	a := &ActivityLog{
		ch:  make(chan Entry, buffer),
		log: log,
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *ActivityLog) run() {
	defer a.wg.Done()
	for e := range a.ch {
		at := e.At
		if at.IsZero() {
			at = time.Now().UTC()
		}
		a.log.Info("activity",
			"user_id", e.UserID,
			"action", e.Action,
			"detail", e.Detail,
			"at", at,
		)
	}
}

// Record enqueues the entry, dropping it when the buffer is full.
func (a *ActivityLog) Record(e Entry) {
	if a == nil {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.ch <- e:
	default:
		a.dropped.Add(1)
	}
}

// Dropped reports how many entries were discarded under backpressure.
func (a *ActivityLog) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops intake, drains buffered entries, and waits for the worker.
func (a *ActivityLog) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()
	a.wg.Wait()
}
