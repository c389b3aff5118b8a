package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
