package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lumenhub/appliance-portal/cmd/appliance-portal/hash"
	"github.com/lumenhub/appliance-portal/cmd/appliance-portal/serve"
)

func main() {
	app := &cli.App{
		Name:  "appliance-portal",
		Usage: "Sign in and switch the appliance on or off",
		Commands: []*cli.Command{
			serve.Cmd(),
			hash.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}
