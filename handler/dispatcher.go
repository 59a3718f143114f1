package handler

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
	"github.com/MarcAntoine-Arnaud/subscriber/formatter"
)

// Config holds configuration for the dispatcher
type Config struct {
	// Stdout receives INFO, DEBUG and TRACE lines (default: os.Stdout, resolved per event)
	Stdout io.Writer
	// Stderr receives WARN and ERROR lines (default: os.Stderr, resolved per event)
	Stderr io.Writer
	// Formatter renders each line (default: LineFormatter)
	Formatter formatter.Formatter
	// Clock supplies the start time and each event's time (default: SystemClock)
	Clock core.Clock
	// OnWriteError selects the behavior of OnEvent when a write fails
	// (default: PanicOnWriteError)
	OnWriteError WriteFailurePolicy
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewLineFormatter()
	}
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock{}
	}
}

// Dispatcher renders each event as one line on stdout or stderr.
// It is immutable after construction and safe for concurrent use.
type Dispatcher struct {
	start     time.Time
	clock     core.Clock
	formatter formatter.Formatter
	router    *Router
	policy    WriteFailurePolicy
	stats     *Stats
}

var _ EventSink = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher. The start time for elapsed-time
// computation is captured here, once.
func NewDispatcher(cfg Config) *Dispatcher {
	applyDefaults(&cfg)
	return &Dispatcher{
		start:     cfg.Clock.Now(),
		clock:     cfg.Clock,
		formatter: cfg.Formatter,
		router:    NewRouter(cfg.Stdout, cfg.Stderr),
		policy:    cfg.OnWriteError,
		stats:     NewStats(),
	}
}

// Start returns the time the dispatcher was created.
func (d *Dispatcher) Start() time.Time {
	return d.start
}

// Elapsed returns the time since Start according to the dispatcher's clock.
func (d *Dispatcher) Elapsed() time.Duration {
	elapsed := d.clock.Now().Sub(d.start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Dispatch renders ev and writes it to the channel for its level.
// The returned error is non-nil only when the write failed.
// A nil event writes nothing.
func (d *Dispatcher) Dispatch(ev *core.Event, scope core.Scope) error {
	if ev == nil {
		return nil
	}
	elapsed := d.Elapsed()

	buf := formatter.GetBuffer()
	d.formatter.FormatEvent(buf, elapsed, ev, scope)

	sink := d.router.Sink(ev.Level)
	_, err := sink.Write(buf.Bytes())
	formatter.PutBuffer(buf)

	if err != nil {
		d.stats.IncrementFailed(sink.Channel())
		return errors.Wrapf(err, "write %s line to %s", ev.Level, sink.Channel())
	}
	d.stats.IncrementWritten(sink.Channel())
	return nil
}

// OnEvent implements EventSink. A write failure panics under
// PanicOnWriteError and is dropped under DropOnWriteError.
func (d *Dispatcher) OnEvent(ev *core.Event, scope core.Scope) {
	if err := d.Dispatch(ev, scope); err != nil && d.policy == PanicOnWriteError {
		panic(err)
	}
}

// Stats returns a snapshot of the current statistics
func (d *Dispatcher) Stats() Snapshot {
	return d.stats.GetSnapshot()
}
