package awsclient

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/common-fate/clio"
	"github.com/common-fate/polsim/pkg/arn"
	"github.com/pkg/errors"
)

// Identity is the caller identity reported by STS.
type Identity struct {
	ARN     arn.ARN
	Account string
	UserID  string
}

// identityKey scopes cached identities to a credential set and region.
// Identity facts are stable for the process lifetime so entries are never
// invalidated.
type identityKey struct {
	credentialScope string
	region          string
}

type identityCache struct {
	mu      sync.Mutex
	entries map[identityKey]Identity
}

func newIdentityCache() *identityCache {
	return &identityCache{entries: map[identityKey]Identity{}}
}

func (c *identityCache) get(key identityKey) (Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.entries[key]
	return id, ok
}

func (c *identityCache) put(key identityKey, id Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = id
}

// CallerIdentity returns the caller's STS identity in the session's default
// region, using the cache where possible.
func (s *Session) CallerIdentity(ctx context.Context) (Identity, error) {
	return s.CallerIdentityInRegion(ctx, s.cfg.Region)
}

// CallerIdentityInRegion returns the caller's STS identity resolved through
// the given region. Successful lookups are cached per credential scope and
// region; failures are not cached.
func (s *Session) CallerIdentityInRegion(ctx context.Context, region string) (Identity, error) {
	creds, err := s.cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return Identity{}, errors.Wrap(err, "resolving credentials")
	}
	key := identityKey{credentialScope: creds.AccessKeyID, region: region}
	if id, ok := s.identities.get(key); ok {
		return id, nil
	}

	client := sts.NewFromConfig(s.ConfigForRegion(region))
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, errors.Wrap(err, "calling sts:GetCallerIdentity")
	}
	parsed, err := arn.Parse(aws.ToString(out.Arn))
	if err != nil {
		return Identity{}, err
	}
	id := Identity{
		ARN:     parsed,
		Account: aws.ToString(out.Account),
		UserID:  aws.ToString(out.UserId),
	}
	s.identities.put(key, id)
	clio.Debugw("resolved caller identity", "arn", id.ARN.String(), "region", region)
	return id, nil
}

// AccountNumber returns the caller's own account id.
func (s *Session) AccountNumber(ctx context.Context) (string, error) {
	id, err := s.CallerIdentity(ctx)
	if err != nil {
		return "", err
	}
	return id.Account, nil
}
