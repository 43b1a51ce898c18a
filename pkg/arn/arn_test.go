package arn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	a, err := Parse("arn:aws:iam::123456789012:role/MyRole")
	require.NoError(t, err)
	assert.Equal(t, ARN{
		Prefix:       "arn",
		Partition:    "aws",
		Service:      "iam",
		AccountID:    "123456789012",
		ResourceType: "role",
		ResourceID:   "MyRole",
	}, a)
	assert.Equal(t, "arn:aws:iam::123456789012:role/MyRole", a.String())
}

func TestParseNestedResourceID(t *testing.T) {
	// resource ids may themselves contain slashes, only the first one splits
	a, err := Parse("arn:aws:iam::123456789012:role/service-role/MyRole")
	require.NoError(t, err)
	assert.Equal(t, "role", a.ResourceType)
	assert.Equal(t, "service-role/MyRole", a.ResourceID)
	assert.Equal(t, "arn:aws:iam::123456789012:role/service-role/MyRole", a.String())
}

func TestParseLowercasesResourceType(t *testing.T) {
	a, err := Parse("arn:aws:iam::123456789012:Role/MyRole")
	require.NoError(t, err)
	assert.Equal(t, "role", a.ResourceType)
}

func TestParseResourceWithoutSlash(t *testing.T) {
	// without a '/' the whole segment is treated as the resource type and the
	// resource id stays empty, so the round trip gains a trailing slash
	a, err := Parse("arn:aws:sts::123456789012:assumed-role")
	require.NoError(t, err)
	assert.Equal(t, "assumed-role", a.ResourceType)
	assert.Empty(t, a.ResourceID)
	assert.Equal(t, "arn:aws:sts::123456789012:assumed-role/", a.String())
}

func TestParseTooFewSegments(t *testing.T) {
	_, err := Parse("arn:aws:iam")
	var merr *MalformedIdentityError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "arn:aws:iam", merr.Input)
}

func TestRoundTripPreservesLocationFields(t *testing.T) {
	in := "arn:aws-us-gov:ec2:us-gov-west-1:123456789012:instance/i-0abc"
	a, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, in, a.String())
}
