// Package main is the entry point for provcache.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/joho/godotenv"
	"go.trai.ch/provcache/cmd/provcache/commands"
	"go.trai.ch/provcache/internal/app"
	"go.trai.ch/provcache/internal/core/domain"
	_ "go.trai.ch/provcache/internal/wiring"
)

// ComponentProvider is a function that returns the application components
// and a cleanup function releasing them.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(provcacheMain())
}

func provcacheMain() int {
	return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, provideComponents)
}

func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}

	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	output, _ := components.Logger.(commands.OutputSwitcher)

	cli := commands.New(components.App, output)
	cli.SetArgs(args)
	cli.SetInput(stdin)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Rejections are reported by the validation gate itself.
		if errors.Is(err, domain.ErrRejected) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
