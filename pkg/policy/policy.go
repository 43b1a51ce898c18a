// Package policy models IAM policy documents and provides the statement
// merging used to fold multiple restrictive policies into one.
package policy

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// DefaultVersion is the policy language version stamped onto merged documents.
const DefaultVersion = "2012-10-17"

// Statements is the ordered statement list of a policy document. Statement
// contents are opaque to this package and are carried through untouched.
//
// AWS accepts both a single statement object and an array of them, so
// unmarshalling handles either shape.
type Statements []json.RawMessage

func (s *Statements) UnmarshalJSON(data []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single json.RawMessage
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = Statements{single}
	return nil
}

// Document is an IAM policy document. Id is the only other top-level member
// the policy grammar allows; it is carried through so that re-serializing a
// parsed document is lossless.
type Document struct {
	Version   string     `json:"Version"`
	Id        string     `json:"Id,omitempty"`
	Statement Statements `json:"Statement"`
}

// Parse normalizes a serialized policy document to its structured form.
func Parse(text string) (Document, error) {
	var d Document
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return Document{}, fmt.Errorf("parsing policy document: %w", err)
	}
	return d, nil
}

// ParseEncoded parses a URL-encoded policy document, the form the IAM API
// returns documents in (for example from GetPolicyVersion).
func ParseEncoded(text string) (Document, error) {
	decoded, err := url.QueryUnescape(text)
	if err != nil {
		return Document{}, fmt.Errorf("decoding policy document: %w", err)
	}
	return Parse(decoded)
}

// JSON serializes the document for the simulation API.
func (d Document) JSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Merge folds multiple policy documents into a single document by
// concatenating their statements in order under DefaultVersion. No
// deduplication or conflict resolution is performed; IAM's evaluation rules
// are unaffected by statement order.
func Merge(docs []Document) Document {
	merged := Document{Version: DefaultVersion, Statement: Statements{}}
	for _, d := range docs {
		merged.Statement = append(merged.Statement, d.Statement...)
	}
	return merged
}
