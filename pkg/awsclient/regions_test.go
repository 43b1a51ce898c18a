package awsclient

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionAvailableUsesCachedIdentity(t *testing.T) {
	// no STS endpoint is reachable in tests, so a true result proves the
	// probe answered from the identity cache instead of calling out
	s := &Session{
		cfg: aws.Config{
			Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{AccessKeyID: "AKIA123"}, nil
			}),
		},
		identities: newIdentityCache(),
	}
	s.identities.put(identityKey{credentialScope: "AKIA123", region: "eu-west-1"}, Identity{Account: "123456789012"})

	available, err := s.RegionAvailable(context.Background(), "eu-west-1")
	require.NoError(t, err)
	assert.True(t, available)
}
