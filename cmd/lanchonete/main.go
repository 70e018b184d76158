package main

import (
	"context"
	"os"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/xenking/lanchonete/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Metrics) error {
		cfg, err := appkg.LoadConfig(os.Args[1:])
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, appkg.Telemetry{
			MeterProvider:  m.MeterProvider(),
			TracerProvider: m.TracerProvider(),
		}, cfg, os.Stdin, os.Stdout)
	})
}
