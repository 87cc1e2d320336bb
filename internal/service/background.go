package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
)

// Registry tracks detached operations that outlive their interaction
// exchange, such as a task creation that lost the race against the reply
// timeout. Results are logged, never delivered back to the user; the
// registry exists so that loss is explicit and the work stays cancellable.
type Registry struct {
	mu  sync.Mutex
	ops map[string]*Operation
	seq atomic.Uint64
}

// Operation is one detached unit of work.
type Operation struct {
	ID    string
	Label string
	Done  chan struct{}

	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// Start runs fn on its own context, detached from the originating request,
// and registers it under a fresh correlation ID. The entry is removed when
// fn returns.
func (r *Registry) Start(label string, fn func(context.Context) error) *Operation {
	ctx, cancel := context.WithCancel(context.Background())
	op := &Operation{
		ID:     "op-" + strconv.FormatUint(r.seq.Add(1), 10),
		Label:  label,
		Done:   make(chan struct{}),
		cancel: cancel,
	}
	r.mu.Lock()
	r.ops[op.ID] = op
	r.mu.Unlock()

	go func() {
		defer cancel()
		defer close(op.Done)
		err := fn(ctx)
		op.mu.Lock()
		op.err = err
		op.mu.Unlock()
		if err != nil {
			slog.Error("background operation failed", "id", op.ID, "label", label, "err", err)
		} else {
			slog.Info("background operation finished", "id", op.ID, "label", label)
		}
		r.mu.Lock()
		delete(r.ops, op.ID)
		r.mu.Unlock()
	}()
	return op
}

// Lookup returns a still-running operation by correlation ID.
func (r *Registry) Lookup(id string) (*Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	return op, ok
}

// CancelAll signals every in-flight operation to stop. Used at shutdown.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range r.ops {
		op.cancel()
	}
}

// Cancel signals the operation to stop.
func (o *Operation) Cancel() { o.cancel() }

// Err returns the operation's final error once Done is closed.
func (o *Operation) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
