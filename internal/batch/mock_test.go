package batch

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/zipcensus/internal/model"
	"github.com/sells-group/zipcensus/internal/store"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) ResolveState(ctx context.Context, zip string) (string, error) {
	args := m.Called(ctx, zip)
	return args.String(0), args.Error(1)
}

type mockCensus struct{ mock.Mock }

func (m *mockCensus) FetchZIP(ctx context.Context, zip, stateCode string) model.Record {
	args := m.Called(ctx, zip, stateCode)
	return args.Get(0).(model.Record)
}

// snapshot captures what a single Save persisted.
type snapshot struct {
	ledger   []string
	results  []string
	failures int
}

// recordingStore wraps MemoryStore and records every checkpoint.
type recordingStore struct {
	*store.MemoryStore
	snapshots []snapshot
}

func newRecordingStore(seed *store.State) *recordingStore {
	m := store.NewMemoryStore()
	if seed != nil {
		_ = m.Save(context.Background(), seed)
	}
	return &recordingStore{MemoryStore: m}
}

func (r *recordingStore) Save(ctx context.Context, s *store.State) error {
	r.snapshots = append(r.snapshots, snapshot{
		ledger:   s.Ledger.ZIPs(),
		results:  s.Table.ZIPs(),
		failures: s.Failures.Len(),
	})
	return r.MemoryStore.Save(ctx, s)
}

func okRecord(zip, pop string) model.Record {
	return model.NewRecord(zip, []model.Field{
		{Label: "Total Population", Value: pop},
		{Label: model.ZIPCodeColumn, Value: zip},
	})
}
