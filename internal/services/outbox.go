package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const DefaultOpTimeout = 5 * time.Second

// Op is one outbound call to an external collaborator.
type Op = func(ctx context.Context) error

type queuedOp struct {
	name string
	fn   Op
}

// Outbox runs best-effort outbound operations on a single worker so that
// callers never wait on remote I/O. Each operation is attempted once.
type Outbox struct {
	queue     chan queuedOp
	opTimeout time.Duration
	logger    zerolog.Logger
}

func NewOutbox(size int, opTimeout time.Duration, logger zerolog.Logger) *Outbox {
	if size <= 0 {
		size = 1
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &Outbox{
		queue:     make(chan queuedOp, size),
		opTimeout: opTimeout,
		logger:    logger.With().Str("component", "outbox").Logger(),
	}
}

// Enqueue schedules fn and reports whether it was accepted. A full queue
// drops the operation.
func (o *Outbox) Enqueue(name string, fn Op) bool {
	select {
	case o.queue <- queuedOp{name: name, fn: fn}:
		return true
	default:
		o.logger.Warn().Str("op", name).Msg("outbox full, dropping operation")
		return false
	}
}

// Run drains the queue until ctx is cancelled. It blocks.
func (o *Outbox) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case op := <-o.queue:
			o.execute(ctx, op)
		}
	}
}

// Drain runs whatever is queued right now and returns. Used on shutdown
// and in tests.
func (o *Outbox) Drain(ctx context.Context) {
	for {
		select {
		case op := <-o.queue:
			o.execute(ctx, op)
		default:
			return
		}
	}
}

func (o *Outbox) execute(ctx context.Context, op queuedOp) {
	opCtx, cancel := context.WithTimeout(ctx, o.opTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Str("op", op.name).Interface("panic", r).Msg("outbox operation panicked")
		}
	}()

	if err := op.fn(opCtx); err != nil {
		o.logger.Warn().Err(err).Str("op", op.name).Msg("outbox operation failed")
		return
	}
	o.logger.Debug().Str("op", op.name).Msg("outbox operation done")
}
