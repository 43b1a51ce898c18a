package source

import "fmt"

// UnsupportedPrincipalTypeError indicates the identity's resource type is
// neither a user nor a role, so no policies can be aggregated for it.
type UnsupportedPrincipalTypeError struct {
	ResourceType string
}

func (e *UnsupportedPrincipalTypeError) Error() string {
	return fmt.Sprintf("unsupported principal type %q: only IAM users and roles can be simulated", e.ResourceType)
}

// SourceUnavailableError indicates a policy source call failed. Aggregation
// never treats an unavailable source as an empty result: understating the
// restriction set would make a simulated allow meaningless.
type SourceUnavailableError struct {
	Op  string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("policy source unavailable (%s): %v", e.Op, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// OracleInvocationError indicates the simulation call itself failed. The
// decision is never defaulted on error.
type OracleInvocationError struct {
	Err error
}

func (e *OracleInvocationError) Error() string {
	return fmt.Sprintf("policy simulation failed: %v", e.Err)
}

func (e *OracleInvocationError) Unwrap() error {
	return e.Err
}
