package handler

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

// stepClock returns start on the first call and start+offsets[i] afterwards.
type stepClock struct {
	mu      sync.Mutex
	start   time.Time
	offsets []time.Duration
	calls   int
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == 1 || len(c.offsets) == 0 {
		return c.start
	}
	i := c.calls - 2
	if i >= len(c.offsets) {
		i = len(c.offsets) - 1
	}
	return c.start.Add(c.offsets[i])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newTestDispatcher(stdout, stderr *bytes.Buffer, offsets ...time.Duration) *Dispatcher {
	return NewDispatcher(Config{
		Stdout: stdout,
		Stderr: stderr,
		Clock:  &stepClock{start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), offsets: offsets},
	})
}

func message(s string) core.Field {
	return core.Field{Key: core.MessageKey, Type: core.StringType, Str: s}
}

func TestDispatcher_InfoScenario(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDispatcher(&stdout, &stderr, 1234567*time.Microsecond)

	d.OnEvent(&core.Event{
		Level:  core.InfoLevel,
		Module: "app::server",
		Fields: []core.Field{message("started")},
	}, core.EmptyScope)

	if got, want := stdout.String(), "[1.234567 INFO]()(app::server): \"started\"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
}

func TestDispatcher_ErrorScenario(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDispatcher(&stdout, &stderr, 12*time.Microsecond)

	d.OnEvent(&core.Event{
		Level:  core.ErrorLevel,
		Fields: []core.Field{message("boom")},
	}, core.SpanNames{"request", "handler"})

	if got, want := stderr.String(), "[0.000012 ERROR](request | handler)(no module): \"boom\"\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
}

func TestDispatcher_NoMessage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDispatcher(&stdout, &stderr, time.Second)

	d.OnEvent(&core.Event{
		Level:  core.DebugLevel,
		Module: "db",
		Fields: []core.Field{{Key: "rows", Type: core.IntType, Int64: 3}},
	}, core.SpanNames{"query"})

	if got, want := stdout.String(), "[1.000000 DEBUG](query)(db): \n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestDispatcher_Routing(t *testing.T) {
	tests := []struct {
		level  core.Level
		stderr bool
	}{
		{core.TraceLevel, false},
		{core.DebugLevel, false},
		{core.InfoLevel, false},
		{core.WarnLevel, true},
		{core.ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			d := newTestDispatcher(&stdout, &stderr)

			d.OnEvent(&core.Event{Level: tt.level, Fields: []core.Field{message("x")}}, nil)

			target, other := &stdout, &stderr
			if tt.stderr {
				target, other = &stderr, &stdout
			}
			if !strings.Contains(target.String(), " "+tt.level.String()+"]") {
				t.Errorf("Expected %s line on target channel, got %q", tt.level, target.String())
			}
			if other.Len() != 0 {
				t.Errorf("Expected nothing on the other channel, got %q", other.String())
			}
		})
	}
}

func TestDispatcher_ElapsedMonotonic(t *testing.T) {
	var stdout bytes.Buffer
	d := NewDispatcher(Config{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	for i := 0; i < 50; i++ {
		d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
	}

	prev := -1.0
	for _, line := range strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n") {
		field := line[1:strings.IndexByte(line, ' ')]
		elapsed, err := strconv.ParseFloat(field, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q) error = %v", field, err)
		}
		if elapsed < 0 || elapsed < prev {
			t.Errorf("elapsed %v after %v is not monotonic and non-negative", elapsed, prev)
		}
		prev = elapsed
	}
}

func TestDispatcher_ClockBackwardsClamps(t *testing.T) {
	var stdout bytes.Buffer
	d := newTestDispatcher(&stdout, &bytes.Buffer{}, -time.Hour)

	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)

	if !strings.HasPrefix(stdout.String(), "[0.000000 INFO]") {
		t.Errorf("Expected clamped elapsed, got %q", stdout.String())
	}
}

func TestDispatcher_StartIsFixed(t *testing.T) {
	clock := &stepClock{start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), offsets: []time.Duration{time.Second, 2 * time.Second}}
	d := NewDispatcher(Config{Stdout: &bytes.Buffer{}, Clock: clock})

	if !d.Start().Equal(clock.start) {
		t.Errorf("Start() = %v, want %v", d.Start(), clock.start)
	}
	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
	if !d.Start().Equal(clock.start) {
		t.Errorf("Start() changed to %v after events", d.Start())
	}
}

func TestDispatcher_WriteFailurePanics(t *testing.T) {
	d := NewDispatcher(Config{Stdout: failingWriter{}, Stderr: failingWriter{}})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected OnEvent to panic on write failure")
		}
		err, ok := r.(error)
		if !ok || !strings.Contains(err.Error(), "broken pipe") || !strings.Contains(err.Error(), "stdout") {
			t.Errorf("Unexpected panic value: %v", r)
		}
	}()

	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
}

func TestDispatcher_WriteFailureDrop(t *testing.T) {
	d := NewDispatcher(Config{
		Stdout:       failingWriter{},
		Stderr:       failingWriter{},
		OnWriteError: DropOnWriteError,
	})

	d.OnEvent(&core.Event{Level: core.InfoLevel}, nil)
	d.OnEvent(&core.Event{Level: core.ErrorLevel}, nil)
	d.OnEvent(&core.Event{Level: core.WarnLevel}, nil)

	snap := d.Stats()
	if snap.Failed[OutputChannel] != 1 || snap.Failed[ErrorChannel] != 2 {
		t.Errorf("Failed = %v, want stdout=1 stderr=2", snap.Failed)
	}
	if snap.Written[OutputChannel] != 0 || snap.Written[ErrorChannel] != 0 {
		t.Errorf("Written = %v, want zero", snap.Written)
	}
}

func TestDispatcher_DispatchReturnsError(t *testing.T) {
	d := NewDispatcher(Config{Stderr: failingWriter{}})

	err := d.Dispatch(&core.Event{Level: core.WarnLevel}, nil)
	if err == nil {
		t.Fatal("Dispatch() expected error")
	}
	if !strings.Contains(err.Error(), "write WARN line to stderr") {
		t.Errorf("Dispatch() error = %v", err)
	}
}

func TestDispatcher_Concurrent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := NewDispatcher(Config{Stdout: &stdout, Stderr: &stderr})

	const goroutines = 8
	const events = 100
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			level := core.InfoLevel
			if g%2 == 0 {
				level = core.ErrorLevel
			}
			for i := 0; i < events; i++ {
				d.OnEvent(&core.Event{
					Level:  level,
					Module: "worker",
					Fields: []core.Field{message("tick")},
				}, core.SpanNames{"loop"})
			}
		}(g)
	}
	wg.Wait()

	for _, out := range []string{stdout.String(), stderr.String()} {
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if len(lines) != goroutines/2*events {
			t.Errorf("Expected %d lines, got %d", goroutines/2*events, len(lines))
		}
		for _, line := range lines {
			if !strings.HasSuffix(line, "](loop)(worker): \"tick\"") {
				t.Fatalf("Torn line: %q", line)
			}
		}
	}

	snap := d.Stats()
	total := snap.Written[OutputChannel] + snap.Written[ErrorChannel]
	if total != goroutines*events {
		t.Errorf("Expected %d written, got %d", goroutines*events, total)
	}
}

func TestDispatcher_NilEvent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDispatcher(&stdout, &stderr)

	if err := d.Dispatch(nil, core.SpanNames{"s"}); err != nil {
		t.Errorf("Dispatch(nil) error = %v", err)
	}
	d.OnEvent(nil, nil)

	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("Expected no output, got stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
	if snap := d.Stats(); snap.Written[OutputChannel] != 0 || snap.Written[ErrorChannel] != 0 {
		t.Errorf("Written = %v, want zero", snap.Written)
	}
}

func TestDispatcher_SharedWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(Config{Stdout: &buf, Stderr: &buf})

	const goroutines = 8
	const events = 200
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			level := core.InfoLevel
			if g%2 == 0 {
				level = core.ErrorLevel
			}
			for i := 0; i < events; i++ {
				d.OnEvent(&core.Event{Level: level, Fields: []core.Field{message("tick")}}, nil)
			}
		}(g)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != goroutines*events {
		t.Fatalf("Expected %d lines, got %d", goroutines*events, len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "]()(no module): \"tick\"") {
			t.Fatalf("Torn line: %q", line)
		}
	}
}

func BenchmarkDispatcher(b *testing.B) {
	d := NewDispatcher(Config{Stdout: discard{}, Stderr: discard{}})
	ev := &core.Event{
		Level:  core.InfoLevel,
		Module: "app::server",
		Fields: []core.Field{message("test message")},
	}
	scope := core.SpanNames{"request", "handler"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.OnEvent(ev, scope)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
