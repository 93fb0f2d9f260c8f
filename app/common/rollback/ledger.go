package rollback

import (
	"context"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

// UndoFunc reverses one completed forward step of a saga.
type UndoFunc func(ctx context.Context) error

// Ledger collects the undo actions of a single in-flight saga. It is a value
// owned by the saga invocation and threaded through its steps; nothing here is
// process-wide, so concurrent sagas cannot trigger each other's undos.
//
// Register after a forward step succeeds; RunAll when a later step fails;
// Clear when the whole saga succeeds.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]UndoFunc
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]UndoFunc)}
}

// Register stores undo under name, replacing any previous entry with the same
// name (last write wins).
func (l *Ledger) Register(name string, undo UndoFunc) {
	if undo == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[name] = undo
}

// Len reports the number of pending compensations.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RunAll executes every registered undo concurrently and waits for all of them
// to finish. Compensation is best effort: a failed undo is logged and never
// retried, and it does not stop the others. The ledger is cleared afterwards.
func (l *Ledger) RunAll(ctx context.Context) {
	l.mu.Lock()
	entries := l.entries
	l.entries = make(map[string]UndoFunc)
	l.mu.Unlock()

	if len(entries) == 0 {
		return
	}

	var wg sync.WaitGroup
	for name, undo := range entries {
		wg.Add(1)
		go func(name string, undo UndoFunc) {
			defer wg.Done()
			if err := undo(ctx); err != nil {
				logx.WithContext(ctx).Errorf("rollback %q failed: %v", name, err)
			}
		}(name, undo)
	}
	wg.Wait()
}

// Clear discards all entries without running them.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]UndoFunc)
}
