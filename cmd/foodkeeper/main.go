package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"foodkeeper/pkg/app"
)

// main is a thin adapter for installs via `go install ./cmd/foodkeeper`.
func main() {
	if err := app.Run(context.Background(), os.Args[1:], nil); err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal("foodkeeper stopped with error", zap.Error(err))
	}
}
