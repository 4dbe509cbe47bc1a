package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dnsvitals/liveness/internal/cli"
)

func main() {
	ctx := context.Background()

	if err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	return cli.Execute(ctx, args[1:], stdin, stdout, stderr)
}
