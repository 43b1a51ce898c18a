package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConcatenatesStatementsInOrder(t *testing.T) {
	a, err := Parse(`{"Version":"2012-10-17","Statement":[{"Sid":"A1"},{"Sid":"A2"}]}`)
	require.NoError(t, err)
	b, err := Parse(`{"Version":"2012-10-17","Statement":[{"Sid":"B1"}]}`)
	require.NoError(t, err)

	merged := Merge([]Document{a, b})
	assert.Equal(t, DefaultVersion, merged.Version)
	require.Len(t, merged.Statement, 3)
	assert.JSONEq(t, `{"Sid":"A1"}`, string(merged.Statement[0]))
	assert.JSONEq(t, `{"Sid":"A2"}`, string(merged.Statement[1]))
	assert.JSONEq(t, `{"Sid":"B1"}`, string(merged.Statement[2]))
}

func TestMergeEmptyInput(t *testing.T) {
	merged := Merge(nil)
	assert.Equal(t, DefaultVersion, merged.Version)
	assert.Empty(t, merged.Statement)

	// an empty statement list must still serialize as [], not null
	out, err := merged.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Version":"2012-10-17","Statement":[]}`, out)
}

func TestMergePreservesStatementBytes(t *testing.T) {
	in := `{"Version":"2012-10-17","Statement":[{"Effect":"Deny","Action":"*","Resource":"*","Condition":{"StringNotEquals":{"aws:RequestedRegion":["us-east-1"]}}}]}`
	d, err := Parse(in)
	require.NoError(t, err)
	merged := Merge([]Document{d})
	require.Len(t, merged.Statement, 1)
	assert.Equal(t, string(d.Statement[0]), string(merged.Statement[0]))
}

func TestRoundTripPreservesPolicyID(t *testing.T) {
	in := `{"Version":"2012-10-17","Id":"S3AccessPolicy","Statement":[{"Effect":"Allow"}]}`
	d, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, "S3AccessPolicy", d.Id)

	out, err := d.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, in, out)

	// merged documents are new documents and carry no Id of their own
	merged := Merge([]Document{d})
	assert.Empty(t, merged.Id)
	mergedOut, err := merged.JSON()
	require.NoError(t, err)
	assert.NotContains(t, mergedOut, `"Id"`)
}

func TestParseSingleStatementObject(t *testing.T) {
	d, err := Parse(`{"Version":"2012-10-17","Statement":{"Effect":"Allow","Action":"s3:GetObject","Resource":"*"}}`)
	require.NoError(t, err)
	require.Len(t, d.Statement, 1)
}

func TestParseEncoded(t *testing.T) {
	d, err := ParseEncoded(`%7B%22Version%22%3A%222012-10-17%22%2C%22Statement%22%3A%5B%7B%22Effect%22%3A%22Allow%22%7D%5D%7D`)
	require.NoError(t, err)
	assert.Equal(t, "2012-10-17", d.Version)
	require.Len(t, d.Statement, 1)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(`not json`)
	assert.Error(t, err)
}

func TestRestrictionZeroValueAbsent(t *testing.T) {
	var r Restriction
	assert.False(t, r.Present())
	_, ok := r.Document()
	assert.False(t, ok)
}

func TestRestrictionPresent(t *testing.T) {
	d := Merge(nil)
	r := Restrict(d)
	assert.True(t, r.Present())
	got, ok := r.Document()
	require.True(t, ok)
	assert.Equal(t, d, got)
}
