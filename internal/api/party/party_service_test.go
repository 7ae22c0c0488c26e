package party

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/4the-win/go-party-weekend/internal/types"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetPartiesByEvent(ctx context.Context, event string) ([]types.Party, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Party), args.Error(1)
}

func (m *MockRepository) GetPartiesByDateRange(ctx context.Context, event, startDate, endDate string) ([]types.Party, error) {
	args := m.Called(ctx, event, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Party), args.Error(1)
}

func (m *MockRepository) ListEventNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestFetchPartyCatalogCachesResult(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	catalog := []types.Party{{PartyName: "Magnitude", Date: "2026-09-25"}}
	repo.On("GetPartiesByEvent", mock.Anything, "Folsom Weekend").Return(catalog, nil).Once()

	first, err := svc.FetchPartyCatalog(context.Background(), "Folsom Weekend")
	require.NoError(t, err)
	second, err := svc.FetchPartyCatalog(context.Background(), "Folsom Weekend")
	require.NoError(t, err)

	assert.Equal(t, catalog, first)
	assert.Equal(t, catalog, second)
	repo.AssertExpectations(t)
}

func TestFetchPartyCatalogError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	repo.On("GetPartiesByEvent", mock.Anything, "Folsom Weekend").
		Return(nil, errors.New("boom"))

	_, err := svc.FetchPartyCatalog(context.Background(), "Folsom Weekend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to fetch parties for "Folsom Weekend"`)
}

func TestFetchPartyCatalogErrorIsNotCached(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	catalog := []types.Party{{PartyName: "Brut"}}
	repo.On("GetPartiesByEvent", mock.Anything, "Folsom Weekend").
		Return(nil, errors.New("boom")).Once()
	repo.On("GetPartiesByEvent", mock.Anything, "Folsom Weekend").
		Return(catalog, nil).Once()

	_, err := svc.FetchPartyCatalog(context.Background(), "Folsom Weekend")
	require.Error(t, err)

	got, err := svc.FetchPartyCatalog(context.Background(), "Folsom Weekend")
	require.NoError(t, err)
	assert.Equal(t, catalog, got)
	repo.AssertExpectations(t)
}

func TestFetchPartiesByDateRangeSkipsCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	ranged := []types.Party{{PartyName: "Brut", Date: "2026-09-26"}}
	repo.On("GetPartiesByDateRange", mock.Anything, "Folsom Weekend", "2026-09-26", "2026-09-27").
		Return(ranged, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := svc.FetchPartiesByDateRange(context.Background(), "Folsom Weekend", "2026-09-26", "2026-09-27")
		require.NoError(t, err)
		assert.Equal(t, ranged, got)
	}
	repo.AssertExpectations(t)
}

func TestListEventNames_Service(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, testLogger())

	repo.On("ListEventNames", mock.Anything).Return([]string{"Folsom Weekend"}, nil)

	names, err := svc.ListEventNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Folsom Weekend"}, names)
}
