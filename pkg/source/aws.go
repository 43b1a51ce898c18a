package source

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/common-fate/clio"
	"github.com/common-fate/grab"
	"github.com/common-fate/polsim/pkg/arn"
	"github.com/common-fate/polsim/pkg/awsclient"
	"github.com/common-fate/polsim/pkg/policy"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// AWS implements Adapter on top of the IAM and Organizations APIs.
type AWS struct {
	iam     *iam.Client
	orgs    *organizations.Client
	session *awsclient.Session
}

var _ Adapter = (*AWS)(nil)

// NewAWS builds an adapter from a session. IAM and Organizations are global
// services so the session's default region is used for both.
func NewAWS(sess *awsclient.Session) *AWS {
	return &AWS{
		iam:     iam.NewFromConfig(sess.Config()),
		orgs:    organizations.NewFromConfig(sess.Config()),
		session: sess,
	}
}

func unavailable(op string, err error) error {
	return &SourceUnavailableError{Op: op, Err: err}
}

// ResolvePrincipal validates the identity locally; no API call is made.
func (a *AWS) ResolvePrincipal(_ context.Context, identity arn.ARN) (Principal, error) {
	var ptype PrincipalType
	switch identity.ResourceType {
	case "user":
		ptype = PrincipalUser
	case "role":
		ptype = PrincipalRole
	default:
		return Principal{}, &UnsupportedPrincipalTypeError{ResourceType: identity.ResourceType}
	}
	// IAM entity names exclude the path: role/service-role/MyRole -> MyRole
	name := identity.ResourceID
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return Principal{
		Type:      ptype,
		Name:      name,
		AccountID: identity.AccountID,
		Identity:  identity,
	}, nil
}

func (a *AWS) AttachedPolicies(ctx context.Context, p Principal) ([]policy.Document, error) {
	var attached []iamtypes.AttachedPolicy
	var err error
	switch p.Type {
	case PrincipalUser:
		attached, err = grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]iamtypes.AttachedPolicy, *string, error) {
			out, err := a.iam.ListAttachedUserPolicies(ctx, &iam.ListAttachedUserPoliciesInput{UserName: aws.String(p.Name), Marker: marker})
			if err != nil {
				return nil, nil, err
			}
			return out.AttachedPolicies, nextMarker(out.IsTruncated, out.Marker), nil
		})
		if err != nil {
			return nil, unavailable("iam:ListAttachedUserPolicies", err)
		}
	case PrincipalRole:
		attached, err = grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]iamtypes.AttachedPolicy, *string, error) {
			out, err := a.iam.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{RoleName: aws.String(p.Name), Marker: marker})
			if err != nil {
				return nil, nil, err
			}
			return out.AttachedPolicies, nextMarker(out.IsTruncated, out.Marker), nil
		})
		if err != nil {
			return nil, unavailable("iam:ListAttachedRolePolicies", err)
		}
	}

	docs := make([]policy.Document, 0, len(attached))
	for _, ap := range attached {
		doc, err := a.managedPolicyDocument(ctx, aws.ToString(ap.PolicyArn))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (a *AWS) InlinePolicies(ctx context.Context, p Principal) ([]policy.Document, error) {
	switch p.Type {
	case PrincipalUser:
		names, err := grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]string, *string, error) {
			out, err := a.iam.ListUserPolicies(ctx, &iam.ListUserPoliciesInput{UserName: aws.String(p.Name), Marker: marker})
			if err != nil {
				return nil, nil, err
			}
			return out.PolicyNames, nextMarker(out.IsTruncated, out.Marker), nil
		})
		if err != nil {
			return nil, unavailable("iam:ListUserPolicies", err)
		}
		docs := make([]policy.Document, 0, len(names))
		for _, name := range names {
			out, err := a.iam.GetUserPolicy(ctx, &iam.GetUserPolicyInput{UserName: aws.String(p.Name), PolicyName: aws.String(name)})
			if err != nil {
				return nil, unavailable("iam:GetUserPolicy", err)
			}
			doc, err := policy.ParseEncoded(aws.ToString(out.PolicyDocument))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	case PrincipalRole:
		names, err := grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]string, *string, error) {
			out, err := a.iam.ListRolePolicies(ctx, &iam.ListRolePoliciesInput{RoleName: aws.String(p.Name), Marker: marker})
			if err != nil {
				return nil, nil, err
			}
			return out.PolicyNames, nextMarker(out.IsTruncated, out.Marker), nil
		})
		if err != nil {
			return nil, unavailable("iam:ListRolePolicies", err)
		}
		docs := make([]policy.Document, 0, len(names))
		for _, name := range names {
			out, err := a.iam.GetRolePolicy(ctx, &iam.GetRolePolicyInput{RoleName: aws.String(p.Name), PolicyName: aws.String(name)})
			if err != nil {
				return nil, unavailable("iam:GetRolePolicy", err)
			}
			doc, err := policy.ParseEncoded(aws.ToString(out.PolicyDocument))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}
	return nil, nil
}

// GroupPolicies returns the union of the attached and inline policies of
// every group the user belongs to. Roles cannot belong to groups.
func (a *AWS) GroupPolicies(ctx context.Context, p Principal) ([]policy.Document, error) {
	if p.Type != PrincipalUser {
		return nil, nil
	}
	groups, err := grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]iamtypes.Group, *string, error) {
		out, err := a.iam.ListGroupsForUser(ctx, &iam.ListGroupsForUserInput{UserName: aws.String(p.Name), Marker: marker})
		if err != nil {
			return nil, nil, err
		}
		return out.Groups, nextMarker(out.IsTruncated, out.Marker), nil
	})
	if err != nil {
		return nil, unavailable("iam:ListGroupsForUser", err)
	}

	var docs []policy.Document
	for _, g := range groups {
		groupDocs, err := a.groupPolicyDocuments(ctx, aws.ToString(g.GroupName))
		if err != nil {
			return nil, err
		}
		docs = append(docs, groupDocs...)
	}
	return docs, nil
}

func (a *AWS) groupPolicyDocuments(ctx context.Context, groupName string) ([]policy.Document, error) {
	var docs []policy.Document

	attached, err := grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]iamtypes.AttachedPolicy, *string, error) {
		out, err := a.iam.ListAttachedGroupPolicies(ctx, &iam.ListAttachedGroupPoliciesInput{GroupName: aws.String(groupName), Marker: marker})
		if err != nil {
			return nil, nil, err
		}
		return out.AttachedPolicies, nextMarker(out.IsTruncated, out.Marker), nil
	})
	if err != nil {
		return nil, unavailable("iam:ListAttachedGroupPolicies", err)
	}
	for _, ap := range attached {
		doc, err := a.managedPolicyDocument(ctx, aws.ToString(ap.PolicyArn))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	names, err := grab.AllPages(ctx, func(ctx context.Context, marker *string) ([]string, *string, error) {
		out, err := a.iam.ListGroupPolicies(ctx, &iam.ListGroupPoliciesInput{GroupName: aws.String(groupName), Marker: marker})
		if err != nil {
			return nil, nil, err
		}
		return out.PolicyNames, nextMarker(out.IsTruncated, out.Marker), nil
	})
	if err != nil {
		return nil, unavailable("iam:ListGroupPolicies", err)
	}
	for _, name := range names {
		out, err := a.iam.GetGroupPolicy(ctx, &iam.GetGroupPolicyInput{GroupName: aws.String(groupName), PolicyName: aws.String(name)})
		if err != nil {
			return nil, unavailable("iam:GetGroupPolicy", err)
		}
		doc, err := policy.ParseEncoded(aws.ToString(out.PolicyDocument))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (a *AWS) PermissionsBoundary(ctx context.Context, p Principal) (policy.Document, bool, error) {
	var boundary *iamtypes.AttachedPermissionsBoundary
	switch p.Type {
	case PrincipalUser:
		out, err := a.iam.GetUser(ctx, &iam.GetUserInput{UserName: aws.String(p.Name)})
		if err != nil {
			return policy.Document{}, false, unavailable("iam:GetUser", err)
		}
		boundary = out.User.PermissionsBoundary
	case PrincipalRole:
		out, err := a.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(p.Name)})
		if err != nil {
			return policy.Document{}, false, unavailable("iam:GetRole", err)
		}
		boundary = out.Role.PermissionsBoundary
	}
	if boundary == nil || boundary.PermissionsBoundaryArn == nil {
		return policy.Document{}, false, nil
	}
	doc, err := a.managedPolicyDocument(ctx, aws.ToString(boundary.PermissionsBoundaryArn))
	if err != nil {
		return policy.Document{}, false, err
	}
	return doc, true, nil
}

// AccountRestrictivePolicies fetches the SCPs targeting the account. Only
// callable with organization-management credentials; anything else fails.
func (a *AWS) AccountRestrictivePolicies(ctx context.Context, accountID string) ([]policy.Document, error) {
	summaries, err := grab.AllPages(ctx, func(ctx context.Context, nextToken *string) ([]orgtypes.PolicySummary, *string, error) {
		out, err := a.orgs.ListPoliciesForTarget(ctx, &organizations.ListPoliciesForTargetInput{
			TargetId:  aws.String(accountID),
			Filter:    orgtypes.PolicyTypeServiceControlPolicy,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, nil, err
		}
		return out.Policies, out.NextToken, nil
	})
	if err != nil {
		return nil, unavailable("organizations:ListPoliciesForTarget", err)
	}

	docs := make([]policy.Document, 0, len(summaries))
	for _, summary := range summaries {
		out, err := a.orgs.DescribePolicy(ctx, &organizations.DescribePolicyInput{PolicyId: summary.Id})
		if err != nil {
			return nil, unavailable("organizations:DescribePolicy", err)
		}
		doc, err := policy.Parse(aws.ToString(out.Policy.Content))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (a *AWS) CallerAccountID(ctx context.Context) (string, error) {
	account, err := a.session.AccountNumber(ctx)
	if err != nil {
		return "", unavailable("sts:GetCallerIdentity", err)
	}
	return account, nil
}

// Simulate invokes iam:SimulateCustomPolicy and returns the first requested
// action's decision verbatim.
func (a *AWS) Simulate(ctx context.Context, req SimulationRequest) (Decision, error) {
	input := &iam.SimulateCustomPolicyInput{
		ActionNames: req.Actions,
		CallerArn:   aws.String(req.CallerIdentity),
	}
	for _, d := range req.AllowPolicies {
		text, err := d.JSON()
		if err != nil {
			return "", &OracleInvocationError{Err: err}
		}
		input.PolicyInputList = append(input.PolicyInputList, text)
	}
	if doc, ok := req.Restriction.Document(); ok {
		text, err := doc.JSON()
		if err != nil {
			return "", &OracleInvocationError{Err: err}
		}
		input.PermissionsBoundaryPolicyInputList = []string{text}
	}
	if len(req.ResourceARNs) > 0 {
		input.ResourceArns = req.ResourceARNs
	}

	simID := "sim-" + ksuid.New().String()
	clio.Debugw("simulating", "sim_id", simID, "actions", req.Actions, "caller", req.CallerIdentity, "allow_policies", len(input.PolicyInputList), "restricted", req.Restriction.Present())

	out, err := a.iam.SimulateCustomPolicy(ctx, input)
	if err != nil {
		return "", &OracleInvocationError{Err: err}
	}
	if len(out.EvaluationResults) == 0 {
		return "", &OracleInvocationError{Err: errors.New("oracle returned no evaluation results")}
	}
	decision := Decision(out.EvaluationResults[0].EvalDecision)
	clio.Debugw("simulation decision", "sim_id", simID, "decision", decision)
	return decision, nil
}

// managedPolicyDocument fetches the default version document of a managed
// policy. The API returns documents URL-encoded.
func (a *AWS) managedPolicyDocument(ctx context.Context, policyARN string) (policy.Document, error) {
	pol, err := a.iam.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: aws.String(policyARN)})
	if err != nil {
		return policy.Document{}, unavailable("iam:GetPolicy", err)
	}
	version, err := a.iam.GetPolicyVersion(ctx, &iam.GetPolicyVersionInput{
		PolicyArn: aws.String(policyARN),
		VersionId: pol.Policy.DefaultVersionId,
	})
	if err != nil {
		return policy.Document{}, unavailable("iam:GetPolicyVersion", err)
	}
	return policy.ParseEncoded(aws.ToString(version.PolicyVersion.Document))
}

// nextMarker converts IAM's IsTruncated/Marker pagination shape into the
// next-token shape grab.AllPages expects.
func nextMarker(isTruncated bool, marker *string) *string {
	if !isTruncated {
		return nil
	}
	return marker
}
