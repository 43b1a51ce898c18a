package polsim

import (
	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/common-fate/polsim/pkg/source"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "profile", Usage: "AWS shared config profile to use", EnvVars: []string{"AWS_PROFILE"}},
		&cli.StringFlag{Name: "region", Usage: "AWS region to use", EnvVars: []string{"AWS_REGION"}},
	}
}

func sessionOptions(c *cli.Context) []awsclient.Option {
	var opts []awsclient.Option
	if profile := c.String("profile"); profile != "" {
		opts = append(opts, awsclient.WithProfile(profile))
	}
	if region := c.String("region"); region != "" {
		opts = append(opts, awsclient.WithRegion(region))
	}
	return opts
}

func renderDecision(d source.Decision) string {
	switch d {
	case source.DecisionAllowed:
		return color.GreenString(string(d))
	case source.DecisionExplicitDeny, source.DecisionImplicitDeny:
		return color.RedString(string(d))
	}
	return color.YellowString(string(d))
}
