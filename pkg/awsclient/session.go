// Package awsclient wraps AWS session construction for the rest of the
// toolkit: shared config loading, user-agent tagging, request logging, and a
// cached caller-identity lookup.
package awsclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go/middleware"
	"github.com/common-fate/clio"
	"github.com/common-fate/polsim/internal/build"
)

// Session is an AWS config wrapper shared by all clients the toolkit
// constructs. Every client created from it carries the polsim user agent and
// logs request details at debug level.
type Session struct {
	cfg        aws.Config
	identities *identityCache
}

type sessionOptions struct {
	profile string
	region  string
}

type Option func(*sessionOptions)

// WithProfile loads credentials from the named shared config profile.
func WithProfile(profile string) Option {
	return func(o *sessionOptions) { o.profile = profile }
}

// WithRegion overrides the region from the environment or shared config.
func WithRegion(region string) Option {
	return func(o *sessionOptions) { o.region = region }
}

// New loads the default AWS config chain and wraps it in a Session.
func New(ctx context.Context, opts ...Option) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithAPIOptions([]func(*middleware.Stack) error{
			awsmiddleware.AddUserAgentKeyValue("polsim", build.Version),
		}),
		config.WithLogger(clioLogger{}),
		config.WithClientLogMode(aws.LogRequest),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	clio.Debugw("loaded aws session", "region", cfg.Region, "profile", o.profile)
	return &Session{cfg: cfg, identities: newIdentityCache()}, nil
}

// Config returns the session's aws.Config for constructing service clients.
func (s *Session) Config() aws.Config {
	return s.cfg
}

// ConfigForRegion returns a copy of the session config scoped to a region.
func (s *Session) ConfigForRegion(region string) aws.Config {
	cfg := s.cfg.Copy()
	cfg.Region = region
	return cfg
}

// Region returns the session's default region.
func (s *Session) Region() string {
	return s.cfg.Region
}
