package polsim

import (
	"encoding/json"
	"fmt"

	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/common-fate/polsim/pkg/container"
	"github.com/common-fate/polsim/pkg/policy"
	"github.com/common-fate/polsim/pkg/source"
	"github.com/urfave/cli/v2"
)

var PoliciesCommand = cli.Command{
	Name:  "policies",
	Usage: "Print the aggregated policy documents for an IAM user or role",
	Flags: append(sessionFlags(),
		&cli.StringFlag{Name: "principal", Usage: "ARN of the principal to aggregate (defaults to the caller's identity)"},
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
			return err
		}

		out := aggregateOutput{
			Principal:     pc.Identity().String(),
			AllowPolicies: pc.AllowPolicies(),
		}
		if doc, ok := pc.Restriction().Document(); ok {
			out.RestrictPolicy = &doc
		}
		rendered, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(rendered))
		return nil
	},
}

type aggregateOutput struct {
	Principal      string            `json:"principal"`
	AllowPolicies  []policy.Document `json:"allowPolicies"`
	RestrictPolicy *policy.Document  `json:"restrictPolicy,omitempty"`
}
