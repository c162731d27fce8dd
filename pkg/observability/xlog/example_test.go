package xlog_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/omeyang/xguard/pkg/observability/xlog"
)

func ExampleNew() {
	logger, cleanup, err := xlog.New().
		SetOutput(os.Stdout).
		SetFormat("json").
		Build()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger.Info(context.Background(), "service starting",
		slog.String("component", "guard"),
	)
}

func ExampleBuilder_SetRotation() {
	logger, cleanup, err := xlog.New().
		SetRotation("/tmp/xguard-example.log",
			xlog.RotateMaxSize(50),
			xlog.RotateMaxBackups(3),
		).
		Build()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger.Warn(context.Background(), "running low on permits")
	// Output:
}
