package draft

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

const (
	opSave   = "save"
	opDelete = "delete"

	resultOK        = "ok"
	resultError     = "error"
	resultCoalesced = "coalesced"
	resultDropped   = "dropped"
)

type writeOp struct {
	kind     string
	key      string
	snapshot domain.DraftSnapshot
}

// AsyncWriter выполняет Save/Delete в фоне одним воркером.
// Вызывающий никогда не ждёт хранилище: на ключ хранится только последняя
// ещё не записанная операция, более старая заменяется. Для одного ключа
// операции применяются в порядке вызова. Ошибки записи только логируются.
type AsyncWriter struct {
	store      Store
	timeout    time.Duration
	maxPending int
	metrics    Metrics
	logger     Logger

	mu      sync.Mutex
	closed  bool
	pending map[string]writeOp
	order   []string
	notify  chan struct{}
	done    chan struct{}
}

// NewAsyncWriter запускает фоновую запись в store.
// maxPending ограничивает число ключей, ожидающих записи.
func NewAsyncWriter(store Store, maxPending int, timeout time.Duration, metrics Metrics, logger Logger) *AsyncWriter {
	if maxPending <= 0 {
		maxPending = 1
	}

	w := &AsyncWriter{
		store:      store,
		timeout:    timeout,
		maxPending: maxPending,
		metrics:    metrics,
		logger:     logger,
		pending:    make(map[string]writeOp),
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	go w.run()

	return w
}

// Load читает снимок напрямую из хранилища
func (w *AsyncWriter) Load(ctx context.Context, key string) (*domain.DraftSnapshot, error) {
	return w.store.Load(ctx, key)
}

// Save ставит запись снимка в очередь
func (w *AsyncWriter) Save(_ context.Context, key string, snapshot domain.DraftSnapshot) error {
	return w.enqueue(writeOp{kind: opSave, key: key, snapshot: snapshot})
}

// Delete ставит удаление снимка в очередь
func (w *AsyncWriter) Delete(_ context.Context, key string) error {
	return w.enqueue(writeOp{kind: opDelete, key: key})
}

// Close дожидается записи всего, что уже в очереди
func (w *AsyncWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.notify)
	w.mu.Unlock()

	<-w.done
}

func (w *AsyncWriter) enqueue(op writeOp) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}

	if prev, ok := w.pending[op.key]; ok {
		w.pending[op.key] = op
		w.observe(prev.kind, resultCoalesced)
		return nil
	}

	if len(w.order) >= w.maxPending {
		w.observe(op.kind, resultDropped)
		return ErrQueueFull
	}

	w.pending[op.key] = op
	w.order = append(w.order, op.key)

	select {
	case w.notify <- struct{}{}:
	default:
	}
	return nil
}

// next забирает самую старую ожидающую операцию
func (w *AsyncWriter) next() (writeOp, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.order) == 0 {
		return writeOp{}, false
	}
	key := w.order[0]
	w.order = w.order[1:]
	op := w.pending[key]
	delete(w.pending, key)
	return op, true
}

func (w *AsyncWriter) run() {
	defer close(w.done)

	for range w.notify {
		w.drain()
	}
	w.drain()
}

func (w *AsyncWriter) drain() {
	for {
		op, ok := w.next()
		if !ok {
			return
		}
		w.apply(op)
	}
}

func (w *AsyncWriter) apply(op writeOp) {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	var err error
	switch op.kind {
	case opSave:
		err = w.store.Save(ctx, op.key, op.snapshot)
	case opDelete:
		err = w.store.Delete(ctx, op.key)
	}

	result := resultOK
	if err != nil {
		result = resultError
		w.logger.Error("AsyncWriter: %s key=%s failed: %v", op.kind, op.key, err)
	}
	w.observe(op.kind, result)
}

func (w *AsyncWriter) observe(op, result string) {
	if w.metrics != nil {
		w.metrics.IncSnapshotWrite(op, result)
	}
}
