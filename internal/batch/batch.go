// Package batch drives the sequential ZIP → state → census lookup with
// ledger-based deduplication and periodic checkpoints.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/zipcensus/internal/census"
	"github.com/sells-group/zipcensus/internal/model"
	"github.com/sells-group/zipcensus/internal/resilience"
	"github.com/sells-group/zipcensus/internal/store"
	"github.com/sells-group/zipcensus/internal/transform"
	"github.com/sells-group/zipcensus/internal/zipcode"
)

// DefaultCheckpointEvery is the number of resolved ZIPs between checkpoints.
const DefaultCheckpointEvery = 5

// StateNotFound is the message recorded for ZIPs without a known state.
const StateNotFound = "State FIPS code not found"

// Options configures an Orchestrator.
type Options struct {
	// CheckpointEvery flushes after this many resolved ZIPs. Zero or
	// negative selects DefaultCheckpointEvery.
	CheckpointEvery int

	// Now stamps failures. Defaults to time.Now.
	Now func() time.Time
}

// Summary reports the outcome of one Run.
type Summary struct {
	RunID        string         `json:"run_id" yaml:"run_id"`
	Requested    int            `json:"requested" yaml:"requested"`
	Skipped      int            `json:"skipped" yaml:"skipped"`
	Resolved     int            `json:"resolved" yaml:"resolved"`
	Unresolved   int            `json:"unresolved" yaml:"unresolved"`
	CensusErrors int            `json:"census_errors" yaml:"census_errors"`
	Checkpoints  int            `json:"checkpoints" yaml:"checkpoints"`
	Records      []model.Record `json:"records" yaml:"records"`

	// Table is the full result table after the run, including rows from
	// earlier runs.
	Table *model.ResultTable `json:"-" yaml:"-"`
}

// Orchestrator runs batches against a resolver, a census fetcher, and a store.
type Orchestrator struct {
	resolver zipcode.Resolver
	census   census.Fetcher
	store    store.Store
	opts     Options
}

// New creates an Orchestrator.
func New(r zipcode.Resolver, c census.Fetcher, s store.Store, opts Options) *Orchestrator {
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = DefaultCheckpointEvery
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{resolver: r, census: c, store: s, opts: opts}
}

// Run processes every ZIP in rawZIPs that is not already in the ledger, in
// input order. Per-ZIP lookup failures are recorded and never abort the run;
// a resolver transport error or context cancellation flushes pending work
// and returns the error.
func (o *Orchestrator) Run(ctx context.Context, rawZIPs []string) (*Summary, error) {
	sum := &Summary{RunID: uuid.New().String(), Requested: len(rawZIPs)}
	log := zap.L().With(zap.String("run_id", sum.RunID))

	zips, err := transform.NormalizeZIPs(rawZIPs)
	if err != nil {
		return nil, eris.Wrap(err, "batch: normalize zips")
	}

	st, err := o.store.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "batch: load state")
	}
	sum.Table = st.Table

	todo := pendingZIPs(zips, st.Ledger)
	sum.Skipped = len(zips) - len(todo)
	log.Info("batch: starting",
		zap.Int("requested", len(zips)),
		zap.Int("skipped", sum.Skipped),
		zap.Int("to_fetch", len(todo)),
		zap.Int("checkpoint_every", o.opts.CheckpointEvery),
	)

	var pending []model.Record
	flush := func() error {
		for _, rec := range pending {
			if st.Table.UpsertRecord(rec) {
				st.Failures.Remove(rec.ZIP)
				continue
			}
			if f, ok := resilience.NewFailure(rec, o.opts.Now()); ok {
				st.Failures.Put(f)
			}
		}
		// Checkpoints must land even when the run is being cancelled.
		if err := o.store.Save(context.WithoutCancel(ctx), st); err != nil {
			return eris.Wrap(err, "batch: checkpoint")
		}
		sum.Checkpoints++
		log.Info("batch: checkpoint saved",
			zap.Int("records", len(pending)),
			zap.Int("ledger", st.Ledger.Len()),
			zap.Int("results", st.Table.Len()),
		)
		pending = pending[:0]
		return nil
	}
	abort := func(cause error) (*Summary, error) {
		if len(pending) > 0 {
			if err := flush(); err != nil {
				log.Error("batch: checkpoint after abort failed", zap.Error(err))
			}
		}
		return sum, cause
	}

	for _, zip := range todo {
		if err := ctx.Err(); err != nil {
			return abort(eris.Wrap(err, "batch: cancelled"))
		}

		stateCode, err := o.resolver.ResolveState(ctx, zip)
		if err != nil {
			return abort(eris.Wrapf(err, "batch: resolve %s", zip))
		}
		st.Ledger.Add(zip)

		if stateCode == "" {
			rec := model.NewErrorRecord(zip, model.StageState, StateNotFound, nil)
			pending = append(pending, rec)
			sum.Records = append(sum.Records, rec)
			sum.Unresolved++
			log.Warn("batch: state not found", zap.String("zip", zip))
			continue
		}

		rec := o.census.FetchZIP(ctx, zip, stateCode)
		pending = append(pending, rec)
		sum.Records = append(sum.Records, rec)
		sum.Resolved++
		if !rec.OK() {
			sum.CensusErrors++
		}

		if sum.Resolved%o.opts.CheckpointEvery == 0 {
			if err := flush(); err != nil {
				return sum, err
			}
		}
	}

	if len(pending) > 0 {
		if err := flush(); err != nil {
			return sum, err
		}
	}

	log.Info("batch: complete",
		zap.Int("resolved", sum.Resolved),
		zap.Int("unresolved", sum.Unresolved),
		zap.Int("census_errors", sum.CensusErrors),
		zap.Int("checkpoints", sum.Checkpoints),
	)
	return sum, nil
}

// pendingZIPs drops ZIPs already in the ledger and repeats within zips,
// keeping input order.
func pendingZIPs(zips []string, ledger *model.Ledger) []string {
	seen := make(map[string]struct{}, len(zips))
	var out []string
	for _, z := range zips {
		if ledger.Contains(z) {
			continue
		}
		if _, dup := seen[z]; dup {
			continue
		}
		seen[z] = struct{}{}
		out = append(out, z)
	}
	return out
}
