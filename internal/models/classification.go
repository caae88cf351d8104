package models

// Classification is the verification strategy chosen for a fenced block.
type Classification int

const (
	// Skip means the block is not verified and produces no outcome.
	Skip Classification = iota
	// VerifyAsUsersConfig validates the block as a users file (--users).
	VerifyAsUsersConfig
	// VerifyAsMainConfig validates the block as the main settings file (--config).
	VerifyAsMainConfig
	// VerifyAsQuery checks the block against the query grammar parser.
	VerifyAsQuery
)

// String returns the string representation of Classification.
func (c Classification) String() string {
	switch c {
	case Skip:
		return "skip"
	case VerifyAsUsersConfig:
		return "users-config"
	case VerifyAsMainConfig:
		return "main-config"
	case VerifyAsQuery:
		return "query"
	default:
		return "unknown"
	}
}

// IsConfig reports whether the classification is verified by the validator binary.
func (c Classification) IsConfig() bool {
	return c == VerifyAsUsersConfig || c == VerifyAsMainConfig
}
