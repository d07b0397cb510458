package delivery

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/revops-assessment/internal/observability"
)

// Dispatcher fans a submission out to every configured sink.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher. Nil sinks are skipped, so callers can pass
// optional sinks unconditionally.
func NewDispatcher(logger *zap.Logger, timeout time.Duration, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{timeout: timeout, logger: logger}
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
	return d
}

// Sinks returns the names of the configured sinks.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	return names
}

// Dispatch delivers sub to all sinks concurrently and waits for them.
// Failures are logged and counted, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, sub Submission) {
	if len(d.sinks) == 0 {
		return
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	var g errgroup.Group
	for _, sink := range d.sinks {
		g.Go(func() error {
			d.deliver(ctx, sink, sub)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, sink Sink, sub Submission) {
	logger := d.logger.With(zap.String("sink", sink.Name()), zap.String("submission_id", sub.ID))

	defer func() {
		if r := recover(); r != nil {
			observability.DeliveriesTotal.WithLabelValues(sink.Name(), "failure").Inc()
			logger.Error("sink panicked", zap.Any("panic", r))
		}
	}()

	start := time.Now()
	if err := sink.Deliver(ctx, sub); err != nil {
		observability.DeliveriesTotal.WithLabelValues(sink.Name(), "failure").Inc()
		logger.Error("delivery failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	observability.DeliveriesTotal.WithLabelValues(sink.Name(), "success").Inc()
	logger.Info("delivered", zap.Duration("duration", time.Since(start)))
}
