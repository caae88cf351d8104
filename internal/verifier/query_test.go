package verifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/docverify/internal/models"
)

// stubParser rejects every query containing one of its bad tokens.
type stubParser struct {
	bad []string
}

func (p stubParser) Parse(query string) error {
	for _, b := range p.bad {
		if strings.Contains(query, b) {
			return errors.New(`syntax error at or near "` + b + `"`)
		}
	}
	return nil
}

func queryBlock(content string) models.FencedBlock {
	return models.FencedBlock{Language: "postgresql", Content: content, SourceFile: "docs/q.md", Ordinal: 1, Line: 1}
}

func TestSuppressIf(t *testing.T) {
	parseErr := errors.New("syntax error")
	allow := Allowlist{"START_REPLICATION"}

	err, suppressed := SuppressIf(nil, "START_REPLICATION", allow)
	assert.NoError(t, err)
	assert.Nil(t, suppressed)

	err, suppressed = SuppressIf(parseErr, "START_REPLICATION SLOT s LOGICAL 0/0", allow)
	assert.NoError(t, err)
	require.NotNil(t, suppressed)
	assert.Equal(t, "START_REPLICATION", suppressed.Entry)

	err, suppressed = SuppressIf(parseErr, "start_replication slot s logical 0/0", allow)
	assert.ErrorIs(t, err, parseErr, "matching is case-sensitive")
	assert.Nil(t, suppressed)
}

func TestQueryVerifier_AllowlistSuppression(t *testing.T) {
	v := &QueryVerifier{
		Parser:    stubParser{bad: []string{"SLOT"}},
		Allowlist: DefaultAllowlist(),
	}

	outcome := v.Verify(queryBlock("START_REPLICATION SLOT \"sub\" LOGICAL 0/0;"))
	assert.True(t, outcome.Passed)
	assert.True(t, outcome.Suppressed)
	assert.Contains(t, outcome.Diagnostic, "START_REPLICATION")

	// Same invalid syntax without the allowlisted command
	outcome = v.Verify(queryBlock("BEGIN_STREAM SLOT \"sub\" LOGICAL 0/0;"))
	assert.False(t, outcome.Passed)
	assert.False(t, outcome.Suppressed)
	assert.Contains(t, outcome.Diagnostic, "syntax error")
}

func TestQueryVerifier_PostgresGrammar(t *testing.T) {
	v := NewQueryVerifier(DefaultAllowlist())

	tests := []struct {
		name       string
		query      string
		passed     bool
		suppressed bool
	}{
		{"select", "SELECT id, email FROM users WHERE id = $1;", true, false},
		{"multiple statements", "BEGIN;\nSET LOCAL pgdog.shard TO 1;\nCOMMIT;\n", true, false},
		{"malformed", "SELEC * FRM users;", false, false},
		{"replication command", "START_REPLICATION SLOT \"pgdog\" LOGICAL 0/0 (proto_version '4');", true, true},
		{"identify system", "IDENTIFY_SYSTEM;", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := v.Verify(queryBlock(tt.query))
			assert.Equal(t, tt.passed, outcome.Passed, outcome.Diagnostic)
			assert.Equal(t, tt.suppressed, outcome.Suppressed)
			if !tt.passed {
				assert.NotEmpty(t, outcome.Diagnostic)
			}
		})
	}
}

func TestAllowlist_With(t *testing.T) {
	base := DefaultAllowlist()
	extended := base.With("SHOW POOLS")

	assert.Len(t, extended, len(base)+1)
	_, ok := base.Match("SHOW POOLS")
	assert.False(t, ok, "With must not modify the receiver")
	entry, ok := extended.Match("SHOW POOLS;")
	assert.True(t, ok)
	assert.Equal(t, "SHOW POOLS", entry)
}

func TestVerifier_Dispatch(t *testing.T) {
	runner := &fakeRunner{}
	v := &Verifier{
		Config: &ConfigVerifier{Binary: "pgdog", Scratch: &memScratch{path: "s"}, Runner: runner},
		Query:  &QueryVerifier{Parser: stubParser{}, Allowlist: DefaultAllowlist()},
	}

	outcome, err := v.Verify(context.Background(), configBlock("[[users]]"), models.VerifyAsUsersConfig)
	require.NoError(t, err)
	assert.True(t, outcome.Passed)
	assert.Len(t, runner.calls, 1)

	outcome, err = v.Verify(context.Background(), queryBlock("SELECT 1"), models.VerifyAsQuery)
	require.NoError(t, err)
	assert.True(t, outcome.Passed)
	assert.Len(t, runner.calls, 1, "query blocks never reach the validator binary")

	_, err = v.Verify(context.Background(), configBlock("[lib]"), models.Skip)
	assert.Error(t, err)
}
