package polsim

import (
	"fmt"

	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/urfave/cli/v2"
)

var WhoamiCommand = cli.Command{
	Name:  "whoami",
	Usage: "Print the caller's resolved identity",
	Flags: sessionFlags(),
	Action: func(c *cli.Context) error {
		ctx := c.Context
		sess, err := awsclient.New(ctx, sessionOptions(c)...)
		if err != nil {
			return err
		}
		id, err := sess.CallerIdentity(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("arn:     %s\n", id.ARN.String())
		fmt.Printf("account: %s\n", id.Account)
		fmt.Printf("user id: %s\n", id.UserID)
		return nil
	},
}
