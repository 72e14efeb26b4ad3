package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/Faultbox/solarfarm/internal/sim"
)

// Sink stores samples. *Store satisfies it.
type Sink interface {
	Record(ctx context.Context, sample Sample) error
	Close() error
}

// Recorder is fed from the frame loop. Gauges are updated every frame;
// every interval of wall time a sample is queued for the sink, which is
// written on a separate goroutine so the frame never waits on the database.
type Recorder struct {
	sink     Sink
	gauges   *Gauges
	interval time.Duration
	now      func() time.Time
	meter    metric.Meter
	log      *zap.Logger

	queue chan Sample
	wg    sync.WaitGroup
	last  time.Time

	recorded metric.Int64Counter
	dropped  metric.Int64Counter

	closeOnce sync.Once
	closeErr  error
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// WithMeter creates the sample counters on m instead of the global meter.
func WithMeter(m metric.Meter) RecorderOption {
	return func(r *Recorder) { r.meter = m }
}

// WithQueueSize sets how many samples may wait for the sink.
func WithQueueSize(n int) RecorderOption {
	return func(r *Recorder) { r.queue = make(chan Sample, n) }
}

// NewRecorder starts the writer goroutine. sink may be nil to publish gauges
// only. The writer exits when ctx is cancelled or Close is called.
func NewRecorder(ctx context.Context, sink Sink, gauges *Gauges, interval time.Duration, opts ...RecorderOption) (*Recorder, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sample interval %v must be positive", interval)
	}
	r := &Recorder{
		sink:     sink,
		gauges:   gauges,
		interval: interval,
		now:      time.Now,
		queue:    make(chan Sample, 64),
		log:      logger.Named("telemetry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.meter == nil {
		r.meter = meter()
	}

	var err error
	r.recorded, err = r.meter.Int64Counter("farm.samples.recorded",
		metric.WithDescription("Samples written to the store"))
	if err != nil {
		return nil, fmt.Errorf("creating recorded counter: %w", err)
	}
	r.dropped, err = r.meter.Int64Counter("farm.samples.dropped",
		metric.WithDescription("Samples dropped because the store fell behind"))
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	r.wg.Add(1)
	go r.write(ctx)
	return r, nil
}

// Observe publishes state to the gauges and, once per interval, queues a
// sample. The first call always queues.
func (r *Recorder) Observe(state *sim.SimulationState) {
	now := r.now()
	sample := NewSample(state, now)

	if r.gauges != nil {
		r.gauges.Set(sample)
	}
	if r.sink == nil {
		return
	}
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return
	}
	r.last = now

	select {
	case r.queue <- sample:
	default:
		r.dropped.Add(context.Background(), 1)
		r.log.Warn("queue full, sample dropped", zap.Float32("hour", sample.Hour))
	}
}

func (r *Recorder) write(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return
		case s, ok := <-r.queue:
			if !ok {
				return
			}
			r.store(s)
		}
	}
}

// drain flushes what is already queued once the context is gone.
func (r *Recorder) drain() {
	for {
		select {
		case s, ok := <-r.queue:
			if !ok {
				return
			}
			r.store(s)
		default:
			return
		}
	}
}

func (r *Recorder) store(s Sample) {
	if r.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.sink.Record(ctx, s); err != nil {
		r.log.Error("write failed", zap.Error(err))
		return
	}
	r.recorded.Add(ctx, 1)
	r.log.Debug("sample stored",
		zap.Float32("hour", s.Hour),
		zap.Float32("power_kw", s.PowerKW),
		zap.String("status", s.Status))
}

// Close flushes queued samples and closes the sink and gauges. Observe must
// not be called afterwards.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.queue)
		r.wg.Wait()

		var errs []error
		if r.sink != nil {
			errs = append(errs, r.sink.Close())
		}
		if r.gauges != nil {
			errs = append(errs, r.gauges.Close())
		}
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}
