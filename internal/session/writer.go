package session

import (
	"context"
	"sync"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

// writer persists snapshots on a single background goroutine. Snapshots
// submitted while a save is running coalesce into the latest one.
type writer struct {
	repo SessionRepository

	mu      sync.Mutex
	cond    *sync.Cond
	pending *Snapshot
	seq     uint64
	done    uint64
	closed  bool

	kick    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

func newWriter(repo SessionRepository) *writer {
	w := &writer{
		repo:    repo,
		kick:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

func (w *writer) submit(snap Snapshot) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		config.Logger.Warn("Session writer is closed, snapshot dropped")
		return
	}
	w.pending = &snap
	w.seq++
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *writer) loop() {
	defer close(w.stopped)
	for {
		select {
		case <-w.kick:
			w.saveLatest()
		case <-w.quit:
			w.saveLatest()
			return
		}
	}
}

func (w *writer) saveLatest() {
	w.mu.Lock()
	snap, seq := w.pending, w.seq
	w.pending = nil
	w.mu.Unlock()

	if snap != nil {
		ctx := context.Background()
		if err := w.repo.Save(ctx, snap.Sessions, snap.CurrentSessionID); err != nil {
			config.WithContext(ctx).WithError(err).Error("Failed to persist sessions")
		}
	}

	w.mu.Lock()
	if seq > w.done {
		w.done = seq
	}
	w.cond.Broadcast()
	w.mu.Unlock()
}

// flush blocks until every snapshot submitted so far has been handled or ctx ends.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.seq
	w.mu.Unlock()

	reached := make(chan bool, 1)
	go func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for w.done < target && ctx.Err() == nil {
			w.cond.Wait()
		}
		reached <- w.done >= target
	}()

	var ok bool
	select {
	case ok = <-reached:
	case <-ctx.Done():
		// wake the waiter so it sees ctx is done
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
		ok = <-reached
	}
	if !ok {
		return ctx.Err()
	}
	return nil
}

func (w *writer) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.quit)
	<-w.stopped
}
