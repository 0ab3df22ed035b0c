package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/mdclip"
)

// Handler does the work behind Worker messages.
type Handler interface {
	Enrich(ctx context.Context, req mdclip.EnrichRequest) (*mdclip.Enrichment, error)
	Deliver(ctx context.Context, req DeliverRequest) (*Completion, error)
}

// handlerFuncs pairs an Enricher with a delivery function.
type handlerFuncs struct {
	mdclip.Enricher
	deliver func(ctx context.Context, req DeliverRequest) (*Completion, error)
}

func (h handlerFuncs) Deliver(ctx context.Context, req DeliverRequest) (*Completion, error) {
	return h.deliver(ctx, req)
}

// NewHandler returns a Handler that enriches with e and delivers with p.
func NewHandler(p *Pipeline, e mdclip.Enricher) Handler {
	return handlerFuncs{Enricher: e, deliver: p.Deliver}
}

// queueSize bounds the number of messages waiting for the Worker.
const queueSize = 16

// Worker processes enrichment and delivery messages on a background
// goroutine. Its work runs under a context detached from the caller's, so
// a caller that stops waiting does not abort an accepted message. Completed
// deliveries are broadcast to subscribers and sent to the Notifier.
type Worker struct {
	handler  Handler
	notifier mdclip.Notifier
	logger   *slog.Logger
	ctx      context.Context

	mu     sync.RWMutex
	closed bool
	queue  chan func(context.Context)
	done   chan struct{}

	subMu       sync.Mutex
	subscribers map[int]chan Completion
	nextSub     int
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithNotifier sets where background completions are announced.
func WithNotifier(n mdclip.Notifier) WorkerOption {
	return func(w *Worker) {
		w.notifier = n
	}
}

// WithLogger sets the Worker's logger.
func WithLogger(l *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = l
	}
}

// NewWorker starts a Worker. Values from ctx are kept but its cancellation
// is not: the Worker stops only when Close is called.
func NewWorker(ctx context.Context, handler Handler, opts ...WorkerOption) *Worker {
	w := &Worker{
		handler:     handler,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:         context.WithoutCancel(ctx),
		queue:       make(chan func(context.Context), queueSize),
		done:        make(chan struct{}),
		subscribers: make(map[int]chan Completion),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for msg := range w.queue {
		msg(w.ctx)
	}
}

// post queues msg, reporting false if the Worker is closed.
func (w *Worker) post(msg func(context.Context)) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	w.queue <- msg
	return true
}

// Enrich queues an enrichment request.
func (w *Worker) Enrich(req mdclip.EnrichRequest) *Task[*mdclip.Enrichment] {
	task := newTask[*mdclip.Enrichment]()
	ok := w.post(func(ctx context.Context) {
		task.resolve(w.handler.Enrich(ctx, req))
	})
	if !ok {
		task.resolve(nil, errWorkerClosed())
	}
	return task
}

// Deliver queues the enrichment and delivery segment of a run.
func (w *Worker) Deliver(req DeliverRequest) *Task[*Completion] {
	task := newTask[*Completion]()
	ok := w.post(func(ctx context.Context) {
		completion, err := w.handler.Deliver(ctx, req)
		if err != nil {
			completion = &Completion{RunID: req.RunID, Filename: req.Filename, Err: err}
		}
		w.complete(*completion)
		task.resolve(completion, err)
	})
	if !ok {
		task.resolve(nil, errWorkerClosed())
	}
	return task
}

func (w *Worker) complete(c Completion) {
	if c.Success {
		w.logger.Info("delivery complete", "run", c.RunID, "path", c.Path, "enriched", c.Enriched)
	} else {
		w.logger.Error("delivery failed", "run", c.RunID, "err", c.Err)
	}

	if w.notifier != nil {
		if c.Success {
			w.notifier.Notify("Markdown saved", c.Filename)
		} else {
			msg := mdclip.ErrorMessage(c.Err)
			if mdclip.ErrorCode(c.Err) == mdclip.EINTERNAL {
				msg = c.Err.Error()
			}
			w.notifier.Notify("Extraction failed", "Error: "+msg)
		}
	}

	w.broadcast(c)
}

// Subscribe returns a channel receiving completions and a function that
// ends the subscription. Completions are dropped for subscribers that are
// not ready to receive them.
func (w *Worker) Subscribe() (<-chan Completion, func()) {
	w.subMu.Lock()
	defer w.subMu.Unlock()

	id := w.nextSub
	w.nextSub++
	ch := make(chan Completion, 1)
	w.subscribers[id] = ch

	return ch, func() {
		w.subMu.Lock()
		defer w.subMu.Unlock()
		if sub, ok := w.subscribers[id]; ok {
			delete(w.subscribers, id)
			close(sub)
		}
	}
}

func (w *Worker) broadcast(c Completion) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	for _, ch := range w.subscribers {
		select {
		case ch <- c:
		default:
		}
	}
}

// Close stops accepting messages, waits for queued ones to finish and
// closes all subscriptions.
func (w *Worker) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done

	w.subMu.Lock()
	defer w.subMu.Unlock()
	for id, ch := range w.subscribers {
		delete(w.subscribers, id)
		close(ch)
	}
	return nil
}

func errWorkerClosed() error {
	return mdclip.Errorf(mdclip.EINTERNAL, "worker closed")
}
