package polsim

import (
	"fmt"

	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/urfave/cli/v2"
)

var RegionsCommand = cli.Command{
	Name:  "regions",
	Usage: "List regions enabled for the account, or probe a single region",
	Flags: append(sessionFlags(),
		&cli.StringFlag{Name: "check", Usage: "probe whether this region is available to the caller"},
	),
	Action: func(c *cli.Context) error {
		ctx := c.Context
		sess, err := awsclient.New(ctx, sessionOptions(c)...)
		if err != nil {
			return err
		}

		if region := c.String("check"); region != "" {
			available, err := sess.RegionAvailable(ctx, region)
			if err != nil {
				return err
			}
			if available {
				fmt.Printf("%s is available\n", region)
			} else {
				fmt.Printf("%s is not available\n", region)
			}
			return nil
		}

		regions, err := sess.EnabledRegions(ctx)
		if err != nil {
			return err
		}
		for _, region := range regions {
			fmt.Println(region)
		}
		return nil
	},
}
