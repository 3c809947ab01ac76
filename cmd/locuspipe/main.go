// cmd/locuspipe/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"locuspipe/internal/pipeapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(pipeapp.RunContext(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
