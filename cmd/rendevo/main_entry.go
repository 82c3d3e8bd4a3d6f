//go:build !testcoverage

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	rendevo "github.com/rendevo/client-go"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], DefaultConfig()); err != nil {
		var apiErr *rendevo.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %v (HTTP %d)\n", err, apiErr.StatusCode)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
