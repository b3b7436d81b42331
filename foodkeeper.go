package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"foodkeeper/pkg/app"
)

// main exposes a root-level entry point so `go run foodkeeper.go` works.
func main() {
	if err := app.Run(context.Background(), os.Args[1:], nil); err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal("foodkeeper stopped with error", zap.Error(err))
	}
}
