// Package simclient provides a mock-calling facade over policy simulation:
// instead of executing an API operation it asks the IAM simulation oracle
// whether the caller would be authorized to execute it.
package simclient

import (
	"context"
	"strings"

	"github.com/common-fate/clio"
	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/common-fate/polsim/pkg/container"
	"github.com/common-fate/polsim/pkg/source"
)

// Client simulates operations of a single service for the caller's own
// identity. It answers "would I be allowed to do this", not whether a real
// request with particular parameters would succeed: invocation arguments are
// ignored and conditions tied to request parameters are not evaluated.
type Client struct {
	service string
	pc      *container.Container
}

type options struct {
	includeAccountPolicies bool
	sessionOpts            []awsclient.Option
}

type Option func(*options)

// WithAccountPolicies includes the account's service control policies in the
// simulation. Unlike container construction, the dispatch client leaves
// account policies out by default, since collecting them needs
// organization-management credentials most callers lack.
func WithAccountPolicies() Option {
	return func(o *options) { o.includeAccountPolicies = true }
}

// WithSessionOptions forwards options to the underlying AWS session.
func WithSessionOptions(opts ...awsclient.Option) Option {
	return func(o *options) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// New resolves the caller's identity and eagerly aggregates its policies
// into a container scoped to the given service.
func New(ctx context.Context, service string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	sess, err := awsclient.New(ctx, o.sessionOpts...)
	if err != nil {
		return nil, err
	}
	id, err := sess.CallerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	pc, err := container.New(ctx, id.ARN, source.NewAWS(sess), o.includeAccountPolicies)
	if err != nil {
		return nil, err
	}
	return NewFromContainer(service, pc), nil
}

// NewFromContainer wraps an existing policy container. Useful when the same
// aggregation should be queried for several services.
func NewFromContainer(service string, pc *container.Container) *Client {
	return &Client{service: strings.ToLower(service), pc: pc}
}

// Invoke simulates a single operation and returns the oracle's decision
// verbatim. The operation may be given in the SDK's snake_case convention or
// as the canonical PascalCase action name. All remaining arguments are
// accepted for call-site compatibility and discarded.
func (c *Client) Invoke(ctx context.Context, operation string, _ ...any) (source.Decision, error) {
	action := c.service + ":" + APIActionName(operation)
	clio.Debugw("dispatching simulated call", "service", c.service, "operation", operation, "action", action)
	return c.pc.Simulate(ctx, []string{action})
}
