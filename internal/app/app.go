package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/lanchonete/internal/domain/catalog"
	"github.com/xenking/lanchonete/internal/session"
)

// Telemetry carries the providers used to instrument the session. Nil
// providers fall back to no-op implementations.
type Telemetry struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Run wires the menu, pricing policy and terminal streams into a session
// and drives it to completion. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, t Telemetry, cfg *Config, in io.Reader, out io.Writer) error {
	ctx = zctx.Base(ctx, lg)

	policy, err := cfg.Discount.Policy()
	if err != nil {
		return errors.Wrap(err, "discount policy")
	}
	lg.Debug("Initializing",
		zap.Int64("discount_threshold", policy.ThresholdCents),
		zap.Stringer("discount_rate", policy.Rate),
	)

	m, err := session.New(catalog.Default(), policy, in, out,
		session.WithMeterProvider(t.MeterProvider),
		session.WithTracerProvider(t.TracerProvider),
	)
	if err != nil {
		return errors.Wrap(err, "create session")
	}
	if err := m.Run(ctx); err != nil {
		return errors.Wrap(err, "run session")
	}
	return nil
}
