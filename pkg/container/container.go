// Package container aggregates every policy affecting a principal into a
// single simulatable set: allow-side policies from the identity and its
// groups, and a merged restrict-side policy from the permissions boundary
// and service control policies.
package container

import (
	"context"

	"github.com/common-fate/clio"
	"github.com/common-fate/polsim/pkg/arn"
	"github.com/common-fate/polsim/pkg/policy"
	"github.com/common-fate/polsim/pkg/source"
)

// Container holds the aggregated policies for one principal. It is immutable
// after construction; build a new one to pick up policy changes.
type Container struct {
	identity                arn.ARN
	allow                   []policy.Document
	restriction             policy.Restriction
	accountPoliciesIncluded bool
	src                     source.Adapter
}

// New resolves the identity and gathers its policies through the adapter.
//
// The allow side is attached, then inline, then group policies, in discovery
// order. The restrict side is the permissions boundary followed by the
// account's service control policies when includeAccountPolicies is set;
// collecting those requires organization-management credentials. Restrictive
// documents are merged into exactly one document because the simulation API
// accepts a single boundary input.
//
// Any source failure aborts construction. A fetch failure is never treated
// as "no policies": proceeding with an understated restriction set would
// produce allows the real policy set does not grant.
func New(ctx context.Context, identity arn.ARN, src source.Adapter, includeAccountPolicies bool) (*Container, error) {
	principal, err := src.ResolvePrincipal(ctx, identity)
	if err != nil {
		return nil, err
	}

	attached, err := src.AttachedPolicies(ctx, principal)
	if err != nil {
		return nil, err
	}
	inline, err := src.InlinePolicies(ctx, principal)
	if err != nil {
		return nil, err
	}
	group, err := src.GroupPolicies(ctx, principal)
	if err != nil {
		return nil, err
	}
	allow := make([]policy.Document, 0, len(attached)+len(inline)+len(group))
	allow = append(allow, attached...)
	allow = append(allow, inline...)
	allow = append(allow, group...)

	var restrictive []policy.Document
	boundary, ok, err := src.PermissionsBoundary(ctx, principal)
	if err != nil {
		return nil, err
	}
	if ok {
		restrictive = append(restrictive, boundary)
	}
	if includeAccountPolicies {
		account := identity.AccountID
		if account == "" {
			account, err = src.CallerAccountID(ctx)
			if err != nil {
				return nil, err
			}
		}
		scps, err := src.AccountRestrictivePolicies(ctx, account)
		if err != nil {
			return nil, err
		}
		restrictive = append(restrictive, scps...)
	}

	// merge only when something restrictive was found, so that "no
	// restriction" stays distinct from "an empty restrictive document"
	var restriction policy.Restriction
	if len(restrictive) > 0 {
		restriction = policy.Restrict(policy.Merge(restrictive))
	}

	clio.Debugw("aggregated policies", "identity", identity.String(), "allow_policies", len(allow), "restrictive_policies", len(restrictive), "account_policies_included", includeAccountPolicies)

	return &Container{
		identity:                identity,
		allow:                   allow,
		restriction:             restriction,
		accountPoliciesIncluded: includeAccountPolicies,
		src:                     src,
	}, nil
}

// Identity returns the principal the container was built for.
func (c *Container) Identity() arn.ARN {
	return c.identity
}

// AllowPolicies returns the aggregated allow-side documents in discovery
// order.
func (c *Container) AllowPolicies() []policy.Document {
	return c.allow
}

// Restriction returns the merged restrict-side policy, if any was found.
func (c *Container) Restriction() policy.Restriction {
	return c.restriction
}

// AccountPoliciesIncluded reports whether service control policies were
// collected into the restriction.
func (c *Container) AccountPoliciesIncluded() bool {
	return c.accountPoliciesIncluded
}

type simulateOptions struct {
	resourceARNs []string
}

// SimulateOption adjusts a single simulation call.
type SimulateOption func(*simulateOptions)

// WithResources scopes the simulation to specific resource ARNs instead of
// the default wildcard resource.
func WithResources(arns ...string) SimulateOption {
	return func(o *simulateOptions) { o.resourceARNs = arns }
}

// Simulate evaluates the requested actions against the aggregated policies
// and returns the decision for the first action. Callers wanting a decision
// per action call once per action.
func (c *Container) Simulate(ctx context.Context, actions []string, opts ...SimulateOption) (source.Decision, error) {
	var o simulateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return c.src.Simulate(ctx, source.SimulationRequest{
		AllowPolicies:  c.allow,
		Restriction:    c.restriction,
		Actions:        actions,
		CallerIdentity: c.identity.String(),
		ResourceARNs:   o.resourceARNs,
	})
}
