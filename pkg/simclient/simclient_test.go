package simclient

import (
	"context"
	"testing"

	"github.com/common-fate/polsim/pkg/arn"
	"github.com/common-fate/polsim/pkg/container"
	"github.com/common-fate/polsim/pkg/policy"
	"github.com/common-fate/polsim/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oracleStub struct {
	decision source.Decision
	lastSim  source.SimulationRequest
}

func (o *oracleStub) ResolvePrincipal(_ context.Context, identity arn.ARN) (source.Principal, error) {
	return source.Principal{Type: source.PrincipalType(identity.ResourceType), Name: identity.ResourceID, AccountID: identity.AccountID, Identity: identity}, nil
}

func (o *oracleStub) AttachedPolicies(context.Context, source.Principal) ([]policy.Document, error) {
	return nil, nil
}

func (o *oracleStub) InlinePolicies(context.Context, source.Principal) ([]policy.Document, error) {
	return nil, nil
}

func (o *oracleStub) GroupPolicies(context.Context, source.Principal) ([]policy.Document, error) {
	return nil, nil
}

func (o *oracleStub) PermissionsBoundary(context.Context, source.Principal) (policy.Document, bool, error) {
	return policy.Document{}, false, nil
}

func (o *oracleStub) AccountRestrictivePolicies(context.Context, string) ([]policy.Document, error) {
	return nil, nil
}

func (o *oracleStub) CallerAccountID(context.Context) (string, error) {
	return "123456789012", nil
}

func (o *oracleStub) Simulate(_ context.Context, req source.SimulationRequest) (source.Decision, error) {
	o.lastSim = req
	return o.decision, nil
}

func newTestClient(t *testing.T, service string, stub *oracleStub) *Client {
	t.Helper()
	id, err := arn.Parse("arn:aws:iam::123456789012:user/Alice")
	require.NoError(t, err)
	pc, err := container.New(context.Background(), id, stub, false)
	require.NoError(t, err)
	return NewFromContainer(service, pc)
}

func TestAPIActionName(t *testing.T) {
	tests := []struct {
		operation string
		want      string
	}{
		{"describe_instances", "DescribeInstances"},
		{"get_caller_identity", "GetCallerIdentity"},
		{"list_mfa_devices", "ListMFADevices"},
		{"list_saml_providers", "ListSAMLProviders"},
		{"get_ssh_public_key", "GetSSHPublicKey"},
		{"describe_db_instances", "DescribeDBInstances"},
		{"DescribeInstances", "DescribeInstances"},
		{"get", "Get"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, APIActionName(tc.operation), "operation %q", tc.operation)
	}
}

func TestAPIActionNameOpenIDConnectFamily(t *testing.T) {
	// "open_id" and "client_id" segments don't follow the segment heuristic:
	// the canonical actions use OpenID/ClientID, while EC2's ModifyIdFormat
	// shows "id" alone must stay "Id"
	tests := []struct {
		operation string
		want      string
	}{
		{"list_open_id_connect_providers", "ListOpenIDConnectProviders"},
		{"list_open_id_connect_provider_tags", "ListOpenIDConnectProviderTags"},
		{"get_open_id_connect_provider", "GetOpenIDConnectProvider"},
		{"create_open_id_connect_provider", "CreateOpenIDConnectProvider"},
		{"delete_open_id_connect_provider", "DeleteOpenIDConnectProvider"},
		{"tag_open_id_connect_provider", "TagOpenIDConnectProvider"},
		{"untag_open_id_connect_provider", "UntagOpenIDConnectProvider"},
		{"add_client_id_to_open_id_connect_provider", "AddClientIDToOpenIDConnectProvider"},
		{"remove_client_id_from_open_id_connect_provider", "RemoveClientIDFromOpenIDConnectProvider"},
		{"update_open_id_connect_provider_thumbprint", "UpdateOpenIDConnectProviderThumbprint"},
		{"modify_id_format", "ModifyIdFormat"},
		{"modify_identity_id_format", "ModifyIdentityIdFormat"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, APIActionName(tc.operation), "operation %q", tc.operation)
	}
}

func TestInvokeBuildsActionIdentifier(t *testing.T) {
	stub := &oracleStub{decision: source.DecisionAllowed}
	client := newTestClient(t, "ec2", stub)

	decision, err := client.Invoke(context.Background(), "describe_instances")
	require.NoError(t, err)
	assert.Equal(t, source.DecisionAllowed, decision)
	assert.Equal(t, []string{"ec2:DescribeInstances"}, stub.lastSim.Actions)
	assert.Equal(t, "arn:aws:iam::123456789012:user/Alice", stub.lastSim.CallerIdentity)
}

func TestInvokeIgnoresArguments(t *testing.T) {
	stub := &oracleStub{decision: source.DecisionImplicitDeny}
	client := newTestClient(t, "s3", stub)

	decision, err := client.Invoke(context.Background(), "get_object", "Bucket", "my-bucket", map[string]string{"Key": "file.txt"})
	require.NoError(t, err)
	assert.Equal(t, source.DecisionImplicitDeny, decision)
	assert.Equal(t, []string{"s3:GetObject"}, stub.lastSim.Actions)
	assert.Empty(t, stub.lastSim.ResourceARNs)
}

func TestServiceNameLowercased(t *testing.T) {
	stub := &oracleStub{decision: source.DecisionAllowed}
	client := newTestClient(t, "EC2", stub)

	_, err := client.Invoke(context.Background(), "describe_regions")
	require.NoError(t, err)
	assert.Equal(t, []string{"ec2:DescribeRegions"}, stub.lastSim.Actions)
}
