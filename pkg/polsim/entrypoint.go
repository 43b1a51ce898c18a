// Package polsim contains the CLI commands for the policy simulation
// toolkit.
package polsim

import (
	"github.com/common-fate/clio"
	"github.com/common-fate/polsim/internal/build"
	"github.com/urfave/cli/v2"
)

func GetCliApp() *cli.App {
	app := &cli.App{
		Name:        "polsim",
		Usage:       "Aggregate IAM policies and simulate actions without executing them",
		UsageText:   "polsim [global options] command [command options] [arguments...]",
		Version:     build.Version,
		HideVersion: false,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Log debug messages"},
		},
		Commands: []*cli.Command{
			&SimulateCommand,
			&CanCommand,
			&PoliciesCommand,
			&WhoamiCommand,
			&RegionsCommand,
		},
		EnableBashCompletion: true,
		Before: func(c *cli.Context) error {
			clio.SetLevelFromEnv("POLSIM_LOG")
			if c.Bool("verbose") {
				clio.SetLevelFromString("debug")
			}
			return nil
		},
	}
	return app
}
