package awsclient

import (
	"context"

	"github.com/pkg/errors"
)

// AcrossRegions runs call sequentially in each region and concatenates the
// results in region order. Pagination within a region is the call's own
// concern (grab.AllPages pairs well with it).
func AcrossRegions[T any](ctx context.Context, regions []string, call func(ctx context.Context, region string) ([]T, error)) ([]T, error) {
	var results []T
	for _, region := range regions {
		items, err := call(ctx, region)
		if err != nil {
			return nil, errors.Wrapf(err, "calling region %s", region)
		}
		results = append(results, items...)
	}
	return results, nil
}
