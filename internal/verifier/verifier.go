// Package verifier checks classified documentation blocks against external
// ground truth: the validator binary for config blocks and the PostgreSQL
// grammar for query blocks.
package verifier

import (
	"context"
	"fmt"

	"github.com/harrison/docverify/internal/models"
)

// Verifier routes a classified block to the matching strategy.
type Verifier struct {
	Config *ConfigVerifier
	Query  *QueryVerifier
}

// Verify runs the strategy for kind. Skip blocks must not reach it.
func (v *Verifier) Verify(ctx context.Context, block models.FencedBlock, kind models.Classification) (models.VerificationOutcome, error) {
	switch kind {
	case models.VerifyAsUsersConfig, models.VerifyAsMainConfig:
		if v.Config == nil {
			return models.VerificationOutcome{}, fmt.Errorf("no config verifier for %s", block.Location())
		}
		return v.Config.Verify(ctx, block, kind)
	case models.VerifyAsQuery:
		if v.Query == nil {
			return models.VerificationOutcome{}, fmt.Errorf("no query verifier for %s", block.Location())
		}
		return v.Query.Verify(block), nil
	default:
		return models.VerificationOutcome{}, fmt.Errorf("cannot verify %s block at %s", kind, block.Location())
	}
}
