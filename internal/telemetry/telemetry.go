// Package telemetry regroupe l'initialisation du logger et du tracing,
// partagée par cmd/main.go.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// --- LOGGER ---

// NewLogger : texte lisible en local, JSON ailleurs (collecte par l'infra).
// Chaque ligne porte le nom du service.
func NewLogger(w io.Writer, env, service string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if env == "local" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

// --- TRACING ---

type TracerOptions struct {
	ServiceName string
	Env         string
	Endpoint    string  // host:port du collecteur OTLP gRPC, vide => pas d'export
	SampleRatio float64 // dans [0, 1]
}

// ShutdownFunc vide les spans en attente.
type ShutdownFunc func(context.Context) error

// InitTracer installe le propagateur W3C dans tous les cas, pour que le
// contexte entrant continue d'être relayé (NATS, gRPC) même sans export.
func InitTracer(ctx context.Context, opts TracerOptions) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if opts.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(opts.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(opts.ServiceName),
			semconv.DeploymentEnvironmentKey.String(opts.Env),
		),
	)
	if err != nil {
		// Ressource partielle : on garde ce qui a pu être détecté
		slog.WarnContext(ctx, "Partial OTEL resource", "error", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(opts.SampleRatio)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// newSampler respecte la décision du parent, et échantillonne les racines.
func newSampler(ratio float64) sdktrace.Sampler {
	if ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
