package app

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/ports"
)

// memRepo is an in-memory SeriesRepository for tests.
type memRepo struct {
	mu      sync.Mutex
	series  map[core.SeriesID]*sample.Series
	results map[string]sample.StatisticsResult
}

func newMemRepo() *memRepo {
	return &memRepo{
		series:  make(map[core.SeriesID]*sample.Series),
		results: make(map[string]sample.StatisticsResult),
	}
}

func (m *memRepo) Create(ctx context.Context, s *sample.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[s.ID] = s
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id core.SeriesID) (*sample.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.series[id]
	if !ok {
		return nil, core.NewNotFoundError("series", id.String())
	}
	return s, nil
}

func (m *memRepo) List(ctx context.Context, limit, offset int) ([]*sample.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*sample.Series, 0, len(m.series))
	for _, s := range m.series {
		out = append(out, s)
	}
	return out, nil
}

func (m *memRepo) Delete(ctx context.Context, id core.SeriesID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.series[id]; !ok {
		return core.NewNotFoundError("series", id.String())
	}
	delete(m.series, id)
	return nil
}

func (m *memRepo) SaveResult(ctx context.Context, id core.SeriesID, result sample.StatisticsResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[id.String()+"/"+string(result.Mode)] = result
	return nil
}

func (m *memRepo) GetResult(ctx context.Context, id core.SeriesID, mode sample.VarianceMode) (*sample.StatisticsResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result, ok := m.results[id.String()+"/"+string(mode)]
	if !ok {
		return nil, core.ErrResultNotFound
	}
	return &result, nil
}

// fakeReader serves fixed columns regardless of path.
type fakeReader struct {
	columns []ports.ColumnData
	err     error
}

func (f *fakeReader) ReadColumns(ctx context.Context, path string) ([]ports.ColumnData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns, nil
}

func (f *fakeReader) ReadColumn(ctx context.Context, path string, column core.ColumnKey) (*ports.ColumnData, error) {
	for i := range f.columns {
		if f.columns[i].Key == column {
			return &f.columns[i], nil
		}
	}
	return nil, core.ErrColumnNotFound
}

func TestRunSweep(t *testing.T) {
	reader := &fakeReader{columns: []ports.ColumnData{
		{Key: "returns", Values: sample.SampleSet{2, 4, 4, 4, 5, 5, 7, 9}},
		{Key: "volume", Values: sample.SampleSet{10, 20, 30, 40}, Skipped: 2},
	}}
	repo := newMemRepo()
	svc := NewSweepService(reader, repo, 2)

	result, err := svc.RunSweep(context.Background(), "test.csv", sample.Population)
	require.NoError(t, err)
	require.Len(t, result.Columns, 2)

	// Column order matches the input file
	assert.Equal(t, core.ColumnKey("returns"), result.Columns[0].Column)
	assert.Equal(t, core.ColumnKey("volume"), result.Columns[1].Column)

	returns := result.Columns[0]
	assert.InDelta(t, 5.0, returns.Statistics.Mean, 1e-9)
	assert.InDelta(t, 2.0, returns.Statistics.StdDev, 1e-9)
	assert.NotNil(t, returns.Profile)
	assert.NotNil(t, returns.Risk)
	assert.Equal(t, 2, result.Columns[1].Skipped)

	// Every column was persisted with its result cached
	assert.Len(t, repo.series, 2)
	cached, err := repo.GetResult(context.Background(), returns.SeriesID, sample.Population)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, cached.StdDev, 1e-9)
}

func TestRunSweep_ShortColumnSkipsOptionalSections(t *testing.T) {
	reader := &fakeReader{columns: []ports.ColumnData{
		{Key: "tiny", Values: sample.SampleSet{7}},
	}}
	svc := NewSweepService(reader, newMemRepo(), 1)

	result, err := svc.RunSweep(context.Background(), "tiny.csv", sample.Population)
	require.NoError(t, err)
	require.Len(t, result.Columns, 1)

	report := result.Columns[0]
	assert.Equal(t, 7.0, report.Statistics.Mean)
	assert.Zero(t, report.Statistics.StdDev)
	assert.Nil(t, report.Profile, "profile needs three observations")
	assert.Nil(t, report.Risk, "risk comparison needs two returns")
}

func TestRunSweep_SampleModeRejectsSingletonColumn(t *testing.T) {
	reader := &fakeReader{columns: []ports.ColumnData{
		{Key: "tiny", Values: sample.SampleSet{7}},
	}}
	svc := NewSweepService(reader, newMemRepo(), 1)

	_, err := svc.RunSweep(context.Background(), "tiny.csv", sample.Sample)
	require.Error(t, err)
	assert.True(t, core.IsInvalidInputError(err))
}

func TestRunSweep_ReaderErrorPropagates(t *testing.T) {
	reader := &fakeReader{err: fmt.Errorf("%w: boom", core.ErrIngestFailed)}
	svc := NewSweepService(reader, newMemRepo(), 1)

	_, err := svc.RunSweep(context.Background(), "bad.csv", sample.Population)
	require.Error(t, err)
	assert.True(t, core.IsIngestError(err))
}
