// Command supercut plans reels from labelled scenes without running the API
//
// Scene files hold either a JSON array of scenes or {"source_ref", "scenes"} and may be
// zstd compressed (.zst). Plans go to stdout unless -o names a file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
