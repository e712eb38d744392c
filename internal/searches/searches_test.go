package searches

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is a test double for the Redis-backed repository.
type memoryRepository struct {
	list    []string
	loadErr error
	saveErr error
}

func (m *memoryRepository) Load(ctx context.Context) ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]string, len(m.list))
	copy(out, m.list)
	return out, nil
}

func (m *memoryRepository) Save(ctx context.Context, symbols []string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.list = symbols
	return nil
}

func TestRecordOrdersMostRecentFirst(t *testing.T) {
	svc := NewService(&memoryRepository{}, 5)
	ctx := context.Background()

	for _, sym := range []string{"AAPL", "GOOGL", "MSFT"} {
		_, err := svc.Record(ctx, sym)
		require.NoError(t, err)
	}

	list, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT", "GOOGL", "AAPL"}, list)
}

func TestRecordRemovesDuplicateOnReAdd(t *testing.T) {
	svc := NewService(&memoryRepository{}, 5)
	ctx := context.Background()

	for _, sym := range []string{"AAPL", "GOOGL", "AAPL"} {
		_, err := svc.Record(ctx, sym)
		require.NoError(t, err)
	}

	list, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOGL"}, list)
}

func TestRecordCapsTheList(t *testing.T) {
	svc := NewService(&memoryRepository{}, 3)
	ctx := context.Background()

	for _, sym := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.Record(ctx, sym)
		require.NoError(t, err)
	}

	list, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "D", "C"}, list)
}

func TestRecordNormalizesSymbol(t *testing.T) {
	svc := NewService(&memoryRepository{}, 5)
	ctx := context.Background()

	list, err := svc.Record(ctx, "  aapl ")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, list)
}

func TestRecordEmptySymbol(t *testing.T) {
	svc := NewService(&memoryRepository{}, 5)

	_, err := svc.Record(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySymbol)
}

func TestRecordPropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("redis down")

	_, err := NewService(&memoryRepository{loadErr: boom}, 5).Record(context.Background(), "AAPL")
	assert.ErrorIs(t, err, boom)

	_, err = NewService(&memoryRepository{saveErr: boom}, 5).Record(context.Background(), "AAPL")
	assert.ErrorIs(t, err, boom)
}

func TestClear(t *testing.T) {
	repo := &memoryRepository{list: []string{"AAPL", "GOOGL"}}
	svc := NewService(repo, 5)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx))

	list, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDefaultCapApplied(t *testing.T) {
	svc := NewService(&memoryRepository{}, 0)
	ctx := context.Background()

	for _, sym := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		_, err := svc.Record(ctx, sym)
		require.NoError(t, err)
	}

	list, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, list, DefaultMaxRecent)
}
