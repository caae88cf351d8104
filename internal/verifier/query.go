package verifier

import (
	"fmt"
	"strings"
	"time"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/harrison/docverify/internal/models"
)

// QueryParser checks query text against a grammar.
type QueryParser interface {
	Parse(query string) error
}

// PGParser parses queries with the PostgreSQL server grammar.
type PGParser struct{}

// Parse returns the parser's syntax error, or nil when query is valid.
func (PGParser) Parse(query string) error {
	_, err := pg_query.Parse(query)
	return err
}

// Allowlist holds substrings of protocol commands the grammar parser does not
// understand. Matching is case-sensitive containment in the raw block.
type Allowlist []string

// DefaultAllowlist returns the streaming replication protocol commands.
func DefaultAllowlist() Allowlist {
	return Allowlist{
		"START_REPLICATION",
		"IDENTIFY_SYSTEM",
		"CREATE_REPLICATION_SLOT",
		"DROP_REPLICATION_SLOT",
		"READ_REPLICATION_SLOT",
		"TIMELINE_HISTORY",
		"BASE_BACKUP",
		"UPLOAD_MANIFEST",
	}
}

// With returns a copy of a extended by extra.
func (a Allowlist) With(extra ...string) Allowlist {
	out := make(Allowlist, 0, len(a)+len(extra))
	out = append(out, a...)
	return append(out, extra...)
}

// Match returns the first entry contained in content.
func (a Allowlist) Match(content string) (string, bool) {
	for _, entry := range a {
		if entry != "" && strings.Contains(content, entry) {
			return entry, true
		}
	}
	return "", false
}

// SuppressedError records a parse error that an allowlist entry accepted.
type SuppressedError struct {
	Entry string
	Err   error
}

// Error implements the error interface for SuppressedError.
func (e *SuppressedError) Error() string {
	return fmt.Sprintf("parse error suppressed by allowlist entry %q: %v", e.Entry, e.Err)
}

// SuppressIf is the second step of query verification: it drops a parse
// error when content contains an allowlisted substring. The suppressed error
// is returned for reporting.
func SuppressIf(err error, content string, allowlist Allowlist) (remaining error, suppressed *SuppressedError) {
	if err == nil {
		return nil, nil
	}
	if entry, ok := allowlist.Match(content); ok {
		return nil, &SuppressedError{Entry: entry, Err: err}
	}
	return err, nil
}

// QueryVerifier checks query blocks with a grammar parser.
type QueryVerifier struct {
	Parser    QueryParser
	Allowlist Allowlist
}

// NewQueryVerifier creates a QueryVerifier backed by the PostgreSQL grammar.
func NewQueryVerifier(allowlist Allowlist) *QueryVerifier {
	return &QueryVerifier{
		Parser:    PGParser{},
		Allowlist: allowlist,
	}
}

// Verify parses the block. A failed outcome is always fatal to the run;
// deciding that is left to the caller.
func (v *QueryVerifier) Verify(block models.FencedBlock) models.VerificationOutcome {
	start := time.Now()
	parseErr := v.Parser.Parse(block.Content)
	err, suppressed := SuppressIf(parseErr, block.Content, v.Allowlist)

	outcome := models.VerificationOutcome{
		Block:          block,
		Classification: models.VerifyAsQuery,
		Passed:         err == nil,
		Duration:       time.Since(start),
	}
	switch {
	case err != nil:
		outcome.Diagnostic = err.Error()
	case suppressed != nil:
		outcome.Suppressed = true
		outcome.Diagnostic = suppressed.Error()
	}
	return outcome
}
