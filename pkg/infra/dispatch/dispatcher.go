package dispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 5
	taskChanBuffer = 1000
)

// Dispatcher moves telemetry events from the request path to the configured
// exporters. Events are queued on a bounded channel and fanned out by a fixed
// worker pool, so a slow exporter backs up the queue instead of the request.
// When the queue is full the event is dropped with a warning.
type Dispatcher struct {
	logger    *logrus.Logger
	exporters []telemetry.Exporter
	taskChan  chan func()
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewDispatcher(logger *logrus.Logger, exporters []telemetry.Exporter, workers int) *Dispatcher {
	d := &Dispatcher{
		logger:    logger,
		exporters: exporters,
		taskChan:  make(chan func(), taskChanBuffer),
	}
	d.startWorkers(workers)
	return d
}

func (d *Dispatcher) startWorkers(n int) {
	if n <= 0 {
		n = defaultWorkers
	}
	for i := 0; i < n; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.taskChan {
				task()
			}
		}()
	}
}

// Dispatch queues the event for delivery to every configured exporter.
// It never blocks the caller.
func (d *Dispatcher) Dispatch(evt *telemetry.Event) {
	if len(d.exporters) == 0 {
		return
	}
	d.Enqueue(func() {
		d.fanOut(evt)
	})
}

// Enqueue schedules an arbitrary task on the worker pool.
func (d *Dispatcher) Enqueue(task func()) {
	if d.closed.Load() {
		return
	}
	select {
	case d.taskChan <- task:
	default:
		d.logger.Warn("dispatch queue is full, dropping telemetry task")
	}
}

func (d *Dispatcher) fanOut(evt *telemetry.Event) {
	g := &errgroup.Group{}
	for _, exporter := range d.exporters {
		exporter := exporter
		g.Go(func() error {
			if err := exporter.Handle(context.Background(), evt); err != nil {
				d.logger.
					WithField("exporter", exporter.Name()).
					WithField("interaction_id", evt.InteractionID).
					WithError(err).
					Error("failed to export telemetry event")
			}
			return nil
		})
	}
	_ = g.Wait()

	d.logger.WithFields(logrus.Fields{
		"interaction_id": evt.InteractionID,
		"exporters":      len(d.exporters),
	}).Debug("telemetry event dispatched")
}

// Close drains queued tasks, stops the workers and closes the exporters.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.taskChan)
		d.wg.Wait()
		for _, exporter := range d.exporters {
			exporter.Close()
		}
	})
}
