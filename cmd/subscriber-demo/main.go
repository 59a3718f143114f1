// Command subscriber-demo drives the line dispatcher from every supported
// host: the native logger, log/slog, zap and go-kit, all nested inside
// OpenTelemetry spans.
//
// Without -listen it emits one round of events and exits. With -listen it
// serves "/" (each request runs the same round inside the request span) and,
// with -metrics, the dispatcher's Prometheus counters on "/metrics".
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/MarcAntoine-Arnaud/subscriber/core"
	"github.com/MarcAntoine-Arnaud/subscriber/handler"
	"github.com/MarcAntoine-Arnaud/subscriber/logger"
	"github.com/MarcAntoine-Arnaud/subscriber/spanscope"
)

var (
	listen        = flag.String("listen", "", "Address to serve the demo from. Empty runs a single round and exits.")
	traceEndpoint = flag.String("otlp", "", "Address for the OpenTelemetry Collector. Empty disables export.")
	metrics       = flag.Bool("metrics", false, "Serve dispatcher counters on /metrics (requires -listen).")
	minLevel      = flag.String("level", "trace", "Minimum level for the native and slog hosts.")
)

// hosts bundles one instance of each instrumentation front end, all
// writing through the same dispatcher.
type hosts struct {
	tracer trace.Tracer
	native *logger.Logger
	slog   *slog.Logger
	zap    *zap.Logger
	kit    kitlog.Logger
}

func main() {
	flag.Parse()
	ctx := context.Background()

	spans := spanscope.New()
	dispatcher := handler.NewDispatcher(handler.Config{})
	lvl := logger.ParseLevel(*minLevel)

	log := logger.NewBuilder().
		WithSink(dispatcher).
		WithScope(spans.Scope).
		WithLevel(lvl).
		WithModule("subscriber_demo").
		Build()
	logger.SetDefault(log)

	tp, err := newTracerProvider(ctx, spans)
	if err != nil {
		logger.Errorf(ctx, "failed to set up tracing: %v", err)
		os.Exit(1)
	}
	defer tp.Shutdown(ctx) // nolint

	otel.SetTextMapPropagator(propagation.TraceContext{})
	otel.SetTracerProvider(tp)

	h := newHosts(dispatcher, spans.Scope, lvl, otel.Tracer("subscriber-demo"))

	if *listen == "" {
		h.round(ctx, 0)
		return
	}

	http.Handle("/", otelhttp.NewHandler(h, "request"))
	if *metrics {
		registry := prometheus.NewRegistry()
		registry.MustRegister(handler.NewCollector("subscriber", dispatcher))
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	logger.Info(ctx, "listening", logger.String("addr", *listen), logger.Bool("metrics", *metrics))
	if err := http.ListenAndServe(*listen, nil); err != nil {
		logger.Error(ctx, "server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func newHosts(sink handler.EventSink, scope core.ScopeFunc, lvl logger.Level, tracer trace.Tracer) *hosts {
	native := logger.NewBuilder().
		WithSink(sink).
		WithScope(scope).
		WithLevel(lvl).
		WithModule("subscriber_demo::native").
		Build()

	return &hosts{
		tracer: tracer,
		native: native,
		slog:   slog.New(handler.NewSlogHandler(sink, lvl, scope)).With(handler.ModuleKey, "subscriber_demo::slog"),
		zap:    zap.New(handler.NewZapCore(sink, zap.DebugLevel, scope)).Named("subscriber_demo::zap"),
		kit:    kitlog.With(handler.NewKitLogger(sink, scope), handler.ModuleKey, "subscriber_demo::kit"),
	}
}

func newTracerProvider(ctx context.Context, spans *spanscope.Processor) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			// the service name used to display traces in backends
			semconv.ServiceNameKey.String("subscriber-demo"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(spans),
	}

	if *traceEndpoint != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(*traceEndpoint),
			// TODO: replace grpc.WithTimeout (deprecated) with a dial context deadline
			otlptracegrpc.WithDialOption(grpc.WithBlock(), grpc.WithTimeout(5*time.Second)), // nolint
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

func (h *hosts) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.round(r.Context(), 1)
	fmt.Fprint(w, "ok")
}

// round emits one event per level and per host, nested two spans deep.
func (h *hosts) round(ctx context.Context, depth int) {
	ctx, outer := h.tracer.Start(ctx, "round", trace.WithAttributes(attribute.Int("depth", depth)))
	defer outer.End()

	h.native.Trace(ctx, "entering round")
	h.native.Info(ctx, "native logger", logger.Int("depth", depth))
	h.slog.InfoContext(ctx, "slog logger", "depth", depth)

	ctx, inner := h.tracer.Start(ctx, "work")
	defer inner.End()

	h.zap.Debug("zap logger", handler.ZapContext(ctx), zap.Int("depth", depth))
	h.zap.Warn("zap warning", handler.ZapContext(ctx))
	_ = level.Info(h.kit).Log("msg", "go-kit logger", handler.ContextKey, ctx)
	_ = level.Error(h.kit).Log("msg", "go-kit error", handler.ContextKey, ctx)
	h.native.Debugf(ctx, "round %d done", depth)
}
