// Package store persists the processed-ZIP ledger, the result table, and the
// failures list as flat CSV files.
package store

import (
	"context"

	"github.com/sells-group/zipcensus/internal/model"
)

// State is everything a batch run loads at start and writes at each checkpoint.
type State struct {
	Ledger   *model.Ledger
	Table    *model.ResultTable
	Failures *model.FailureSet
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Ledger:   model.NewLedger(),
		Table:    model.NewResultTable(),
		Failures: model.NewFailureSet(),
	}
}

// Store defines the persistence interface for batch runs.
type Store interface {
	// Load returns the persisted state. Missing artifacts load as empty.
	Load(ctx context.Context) (*State, error)

	// Save rewrites every artifact in full.
	Save(ctx context.Context, s *State) error
}
