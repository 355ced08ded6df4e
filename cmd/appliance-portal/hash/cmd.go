package hash

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/lumenhub/appliance-portal/internal/pkg/passhash"
)

// Cmd prints the stored form of a password for provisioning users.yaml or
// the users collection.
func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Derive the stored hash for a password and salt",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Plain text password",
				EnvVars:  []string{"HASH_PASSWORD"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "salt",
				Usage:    "Per-user salt",
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			_, err := fmt.Fprintln(ctx.App.Writer, passhash.Derive(ctx.String("password"), ctx.String("salt")))
			return err
		},
	}
}
