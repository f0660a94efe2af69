package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"counsel/pkg/requestcontext"
)

// Sink persists events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Reader is implemented by sinks that can be queried.
type Reader interface {
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}

// ErrNotQueryable is returned by List when the sink is write-only (Kafka).
var ErrNotQueryable = errors.New("audit sink does not support queries")

// Publisher stamps events and hands them to the sink, synchronously by
// default or through a bounded queue drained in the background.
type Publisher struct {
	sink   Sink
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	wg     sync.WaitGroup
}

type Option func(*publisherConfig)

type publisherConfig struct {
	logger     *zap.Logger
	bufferSize int
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *publisherConfig) {
		c.logger = logger
	}
}

// WithAsyncBuffer queues up to size events and appends them from a
// background goroutine. A full queue falls back to a synchronous append.
func WithAsyncBuffer(size int) Option {
	return func(c *publisherConfig) {
		c.bufferSize = size
	}
}

func NewPublisher(sink Sink, opts ...Option) *Publisher {
	cfg := publisherConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Publisher{sink: sink, logger: cfg.logger}
	if cfg.bufferSize > 0 {
		p.queue = make(chan Event, cfg.bufferSize)
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		if caller, ok := requestcontext.Actor(ctx); ok {
			event.ActorID = caller.Subject
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.queue != nil && !p.closed {
		select {
		case p.queue <- event:
			return nil
		default:
			p.logger.Warn("audit queue full, appending synchronously", zap.String("action", event.Action))
		}
	}
	return p.sink.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, subject string) ([]Event, error) {
	r, ok := p.sink.(Reader)
	if !ok {
		return nil, ErrNotQueryable
	}
	return r.ListBySubject(ctx, subject)
}

// Close stops accepting queued events and waits for the queue to drain.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.queue != nil {
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.sink.Append(ctx, event); err != nil {
			p.logger.Error("audit append failed",
				zap.String("action", event.Action),
				zap.String("subject", event.Subject),
				zap.Error(err),
			)
		}
		cancel()
	}
}
