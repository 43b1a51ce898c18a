// Package source defines the policy source contract: the capability to
// enumerate the policies affecting a principal and to ask an authorization
// oracle for a decision. The AWS implementation lives in aws.go; tests use
// in-memory fakes.
package source

import (
	"context"

	"github.com/common-fate/polsim/pkg/arn"
	"github.com/common-fate/polsim/pkg/policy"
)

// PrincipalType is the kind of IAM principal a policy container can be built
// for.
type PrincipalType string

const (
	PrincipalUser PrincipalType = "user"
	PrincipalRole PrincipalType = "role"
)

// Principal is a resolved IAM user or role.
type Principal struct {
	Type PrincipalType
	// Name is the IAM entity name, the last path element of the resource id.
	Name      string
	AccountID string
	Identity  arn.ARN
}

// Decision is the oracle's evaluation result for an action. It is propagated
// verbatim; the constants below are the values the IAM simulation API is
// known to return.
type Decision string

const (
	DecisionAllowed      Decision = "allowed"
	DecisionExplicitDeny Decision = "explicitDeny"
	DecisionImplicitDeny Decision = "implicitDeny"
)

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool {
	return d == DecisionAllowed
}

// SimulationRequest carries the aggregated policies and requested actions to
// the oracle.
type SimulationRequest struct {
	AllowPolicies []policy.Document
	Restriction   policy.Restriction
	Actions       []string
	// CallerIdentity is the canonical string form of the principal the
	// simulation runs as.
	CallerIdentity string
	// ResourceARNs optionally scopes the simulation to specific resources.
	ResourceARNs []string
}

// Adapter is the policy source collaborator. All methods are blocking
// round-trips; failures reaching the source surface as
// SourceUnavailableError and are never downgraded to empty results.
type Adapter interface {
	// ResolvePrincipal maps an identity to a principal handle. It fails with
	// UnsupportedPrincipalTypeError for anything other than a user or role,
	// without contacting the source.
	ResolvePrincipal(ctx context.Context, identity arn.ARN) (Principal, error)

	// AttachedPolicies returns the managed policies attached to the principal.
	AttachedPolicies(ctx context.Context, p Principal) ([]policy.Document, error)

	// InlinePolicies returns the principal's inline policies.
	InlinePolicies(ctx context.Context, p Principal) ([]policy.Document, error)

	// GroupPolicies returns the attached and inline policies of every group
	// the principal belongs to. Roles cannot belong to groups and always get
	// an empty result.
	GroupPolicies(ctx context.Context, p Principal) ([]policy.Document, error)

	// PermissionsBoundary returns the principal's permissions boundary
	// document, if one is set.
	PermissionsBoundary(ctx context.Context, p Principal) (policy.Document, bool, error)

	// AccountRestrictivePolicies returns the service control policies that
	// apply to the account. This requires organization-management privilege;
	// without it the call fails rather than returning an empty set.
	AccountRestrictivePolicies(ctx context.Context, accountID string) ([]policy.Document, error)

	// CallerAccountID returns the account id of the caller's own credentials,
	// used when the identity being aggregated carries no account field.
	CallerAccountID(ctx context.Context) (string, error)

	// Simulate asks the oracle for a decision. Only the first requested
	// action's decision is returned; callers needing per-action results call
	// once per action.
	Simulate(ctx context.Context, req SimulationRequest) (Decision, error)
}
