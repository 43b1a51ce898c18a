// Package arn models AWS ARNs as structured identifiers which round-trip
// through their canonical string form.
package arn

import (
	"fmt"
	"strings"
)

// ARN is a structured AWS resource identifier, for example
// arn:aws:iam::123456789012:role/MyRole.
type ARN struct {
	Prefix       string
	Partition    string
	Service      string
	Region       string
	AccountID    string
	ResourceType string
	ResourceID   string
}

// MalformedIdentityError is returned when a string cannot be parsed into the
// minimum number of ARN segments.
type MalformedIdentityError struct {
	Input string
}

func (e *MalformedIdentityError) Error() string {
	return fmt.Sprintf("malformed identity %q: expected at least 6 colon-delimited segments", e.Input)
}

// Parse splits an ARN string into its structured form.
//
// The resource segment is split on the first '/' into a lower-cased resource
// type and the remaining resource id. When the segment contains no '/' the
// whole segment becomes the resource type and the resource id is left empty,
// so String() will not reproduce the input exactly in that case.
func Parse(s string) (ARN, error) {
	parts := strings.SplitN(s, ":", 6)
	if len(parts) < 6 {
		return ARN{}, &MalformedIdentityError{Input: s}
	}
	a := ARN{
		Prefix:    parts[0],
		Partition: parts[1],
		Service:   parts[2],
		Region:    parts[3],
		AccountID: parts[4],
	}
	if strings.Contains(parts[5], "/") {
		resource := strings.SplitN(parts[5], "/", 2)
		a.ResourceType = strings.ToLower(resource[0])
		a.ResourceID = resource[1]
	} else {
		a.ResourceType = parts[5]
	}
	return a, nil
}

// String renders the canonical form. Unset fields render as empty segments.
func (a ARN) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s/%s", a.Prefix, a.Partition, a.Service, a.Region, a.AccountID, a.ResourceType, a.ResourceID)
}
