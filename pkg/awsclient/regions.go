package awsclient

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/common-fate/clio"
)

// EnabledRegions returns the names of all regions enabled for the account,
// including opt-in regions that have been opted into.
func (s *Session) EnabledRegions(ctx context.Context) ([]string, error) {
	client := ec2.NewFromConfig(s.cfg)
	out, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("opt-in-status"),
				Values: []string{"opt-in-not-required", "opted-in"},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, aws.ToString(r.RegionName))
	}
	return regions, nil
}

// RegionAvailable probes whether the region is enabled for the caller's
// credentials by attempting an sts:GetCallerIdentity scoped to it. A service
// error means the region is disabled (or the credentials are invalid there);
// any other error, such as a timeout, is returned to the caller. Successful
// probes share the per-region identity cache, so repeat probes are free.
func (s *Session) RegionAvailable(ctx context.Context, region string) (bool, error) {
	_, err := s.CallerIdentityInRegion(ctx, region)
	if err == nil {
		return true, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		clio.Debugw("region unavailable", "region", region, "code", apiErr.ErrorCode())
		return false, nil
	}
	return false, err
}
