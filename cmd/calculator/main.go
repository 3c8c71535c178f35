// Package main starts the calculator gRPC and HTTP service process lifecycle.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	calculatorcmd "github.com/louisbranch/mysticnumbers/internal/cmd/calculator"
	"github.com/louisbranch/mysticnumbers/internal/platform/config"
)

func main() {
	cfg, err := calculatorcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitOnError("parse flags", err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.ExitOnError("serve calculator", calculatorcmd.Run(ctx, cfg))
}
