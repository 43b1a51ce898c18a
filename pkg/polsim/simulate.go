package polsim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/common-fate/clio/clierr"
	"github.com/common-fate/polsim/pkg/arn"
	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/common-fate/polsim/pkg/container"
	"github.com/common-fate/polsim/pkg/source"
	"github.com/urfave/cli/v2"
)

var SimulateCommand = cli.Command{
	Name:  "simulate",
	Usage: "Simulate actions against the aggregated policies of an IAM user or role",
	Flags: append(sessionFlags(),
		&cli.StringFlag{Name: "principal", Usage: "ARN of the principal to simulate as (defaults to the caller's identity)"},
		&cli.StringSliceFlag{Name: "action", Required: true, Usage: `action to simulate, e.g. "s3:GetObject" (repeatable)`},
		&cli.StringSliceFlag{Name: "resource", Usage: "resource ARN to scope the simulation to (repeatable)"},
		&cli.BoolFlag{Name: "no-scps", Usage: "skip collecting the account's service control policies"},
	),
	Action: func(c *cli.Context) error {
		ctx := c.Context

		sess, err := awsclient.New(ctx, sessionOptions(c)...)
		if err != nil {
			return err
		}

		identity, err := principalIdentity(c, sess)
		if err != nil {
			return err
		}

		pc, err := container.New(ctx, identity, source.NewAWS(sess), !c.Bool("no-scps"))
		if err != nil {
			var unavailable *source.SourceUnavailableError
			if errors.As(err, &unavailable) && strings.HasPrefix(unavailable.Op, "organizations:") {
				return clierr.New(err.Error(),
					clierr.Info("Collecting service control policies requires organization management credentials."),
					clierr.Info("If you don't have them, rerun with --no-scps to evaluate without SCPs."),
				)
			}
			return err
		}

		var simOpts []container.SimulateOption
		if resources := c.StringSlice("resource"); len(resources) > 0 {
			simOpts = append(simOpts, container.WithResources(resources...))
		}

		// the oracle reports one decision per call, so issue one call per action
		for _, action := range c.StringSlice("action") {
			decision, err := pc.Simulate(ctx, []string{action}, simOpts...)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", action, renderDecision(decision))
		}
		return nil
	},
}

func principalIdentity(c *cli.Context, sess *awsclient.Session) (arn.ARN, error) {
	if principal := c.String("principal"); principal != "" {
		return arn.Parse(principal)
	}
	id, err := sess.CallerIdentity(c.Context)
	if err != nil {
		return arn.ARN{}, err
	}
	return id.ARN, nil
}
