// Package main implements the entry point for the studytrack command line,
// a personal tracker of courses, subscriptions and study time.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/studytrack/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(os.Stdin, os.Stdout, os.Stderr, cli.WithVersion(version)).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
