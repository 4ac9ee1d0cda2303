package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"practice-log/internal/cli"
	"practice-log/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	factory := NewAppFactory(getEnvironment(), config.NewLoader())
	root := cli.NewRootCommand(factory.Build)

	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
