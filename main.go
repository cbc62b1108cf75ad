package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-eustace/framework/app"
)

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("eustace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", ".env", "dotenv file to load")
	serve := fs.Bool("serve", false, "serve the garage over HTTP instead of running the demo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	application, err := app.New(stderr, *envFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Shutdown(context.Background()); err != nil {
			fmt.Fprintln(stderr, "eustace: shutdown:", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		return application.Run(ctx)
	}
	return application.Demo(ctx, stdout)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "eustace:", err)
		os.Exit(1)
	}
}
