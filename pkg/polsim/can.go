package polsim

import (
	"fmt"

	"github.com/common-fate/clio/clierr"
	"github.com/common-fate/polsim/pkg/simclient"
	"github.com/urfave/cli/v2"
)

var CanCommand = cli.Command{
	Name:      "can",
	Usage:     "Check whether the caller would be authorized for a service operation",
	UsageText: "polsim can [options] <service> <operation>  (e.g. polsim can ec2 describe_instances)",
	ArgsUsage: "<service> <operation>",
	Flags: append(sessionFlags(),
		// SCPs are opt-in here, unlike 'simulate': self-service checks
		// usually run without organization management access
		&cli.BoolFlag{Name: "scps", Usage: "include the account's service control policies"},
	),
	Action: func(c *cli.Context) error {
		ctx := c.Context
		if c.Args().Len() != 2 {
			return clierr.New("usage: polsim can <service> <operation>",
				clierr.Info("example: polsim can s3 get_object"),
			)
		}
		service, operation := c.Args().Get(0), c.Args().Get(1)

		opts := []simclient.Option{simclient.WithSessionOptions(sessionOptions(c)...)}
		if c.Bool("scps") {
			opts = append(opts, simclient.WithAccountPolicies())
		}
		client, err := simclient.New(ctx, service, opts...)
		if err != nil {
			return err
		}

		decision, err := client.Invoke(ctx, operation)
		if err != nil {
			return err
		}
		fmt.Println(renderDecision(decision))
		return nil
	},
}
