// Package main runs the numerology command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	numerologycmd "github.com/louisbranch/mysticnumbers/internal/cmd/numerology"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := numerologycmd.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
