package handler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
)

func TestZapCore_Write(t *testing.T) {
	sink := &recordingSink{}
	logger := zap.New(NewZapCore(sink, zapcore.DebugLevel, ctxScope)).Named("app").Named("server")

	ctx := context.WithValue(context.Background(), spansKey{}, []string{"request"})
	logger.Info("started",
		ZapContext(ctx),
		zap.Int("port", 8080),
		zap.Float64("ratio", 0.5),
		zap.Bool("tls", true),
		zap.Error(errors.New("none")),
	)

	ev := sink.last(t)
	if ev.level != core.InfoLevel {
		t.Errorf("level = %v", ev.level)
	}
	if ev.module != "app.server" {
		t.Errorf("module = %q, want app.server", ev.module)
	}
	if f, ok := ev.field(core.MessageKey); !ok || f.Str != "started" {
		t.Errorf("message = %+v", f)
	}
	if f, ok := ev.field("port"); !ok || f.Int64 != 8080 {
		t.Errorf("port = %+v", f)
	}
	if f, ok := ev.field("ratio"); !ok || f.Float64 != 0.5 {
		t.Errorf("ratio = %+v", f)
	}
	if f, ok := ev.field("tls"); !ok || f.Int64 != 1 {
		t.Errorf("tls = %+v", f)
	}
	if f, ok := ev.field("error"); !ok || f.Str != "none" {
		t.Errorf("error = %+v", f)
	}
	if _, ok := ev.field("context"); ok {
		t.Error("context field should not be emitted")
	}
	if len(ev.spans) != 1 || ev.spans[0] != "request" {
		t.Errorf("spans = %v", ev.spans)
	}
}

func TestZapCore_WithContext(t *testing.T) {
	sink := &recordingSink{}
	ctx := context.WithValue(context.Background(), spansKey{}, []string{"job", "step"})
	logger := zap.New(NewZapCore(sink, zapcore.DebugLevel, ctxScope)).With(ZapContext(ctx), zap.String("job_id", "j1"))

	logger.Warn("retrying")

	ev := sink.last(t)
	if ev.level != core.WarnLevel {
		t.Errorf("level = %v", ev.level)
	}
	if ev.module != "" {
		t.Errorf("module = %q, want empty", ev.module)
	}
	if f, ok := ev.field("job_id"); !ok || f.Str != "j1" {
		t.Errorf("job_id = %+v", f)
	}
	if len(ev.spans) != 2 {
		t.Errorf("spans = %v", ev.spans)
	}
}

func TestZapCore_LevelEnabler(t *testing.T) {
	sink := &recordingSink{}
	logger := zap.New(NewZapCore(sink, zapcore.WarnLevel, nil))

	logger.Info("filtered")
	logger.Debug("filtered")
	if len(sink.events) != 0 {
		t.Fatalf("Expected no events, got %d", len(sink.events))
	}

	logger.Error("kept")
	if ev := sink.last(t); ev.level != core.ErrorLevel {
		t.Errorf("level = %v", ev.level)
	}
}

func TestZapLevelToCore(t *testing.T) {
	tests := []struct {
		in   zapcore.Level
		want core.Level
	}{
		{zapcore.DebugLevel, core.DebugLevel},
		{zapcore.InfoLevel, core.InfoLevel},
		{zapcore.WarnLevel, core.WarnLevel},
		{zapcore.ErrorLevel, core.ErrorLevel},
		{zapcore.DPanicLevel, core.ErrorLevel},
		{zapcore.FatalLevel, core.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zapLevelToCore(tt.in); got != tt.want {
			t.Errorf("zapLevelToCore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZapCore_Dispatcher(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDispatcher(&stdout, &stderr)
	logger := zap.New(NewZapCore(d, zapcore.DebugLevel, nil)).Named("svc")

	logger.Error("boom")

	if got, want := stderr.String(), "[0.000000 ERROR]()(svc): \"boom\"\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
}

func TestZapCore_FieldKinds(t *testing.T) {
	tests := []struct {
		name  string
		field zap.Field
		want  string
	}{
		{"uint64", zap.Uint64("message", 42), `42`},
		{"uint8", zap.Uint8("message", 7), `7`},
		{"uintptr", zap.Uintptr("message", 0x10), `16`},
		{"complex128", zap.Complex128("message", complex(1, 2)), `(1+2i)`},
		{"complex64", zap.Complex64("message", complex64(complex(3, -1))), `(3-1i)`},
		{"bytestring", zap.ByteString("message", []byte("raw\nbytes")), `"raw\nbytes"`},
		{"binary", zap.Binary("message", []byte{0x01, 'a'}), `"\x01a"`},
		{"stringer", zap.Stringer("message", time.Second), `"1s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			d := newTestDispatcher(&stdout, &stderr)
			logger := zap.New(NewZapCore(d, zapcore.DebugLevel, nil))

			logger.Info("ignored", tt.field)

			want := "[0.000000 INFO]()(no module): " + tt.want + "\n"
			if got := stdout.String(); got != want {
				t.Errorf("stdout = %q, want %q", got, want)
			}
		})
	}
}
