package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/domain"
)

func ticketOn(day time.Time, tags ...string) domain.Ticket {
	return domain.Ticket{
		ID:          "id",
		CreatedDate: day,
		UpdatedDate: day,
		Tags:        tags,
	}
}

func newDashboard(store *fakeTicketStore, now time.Time) *DashboardService {
	svc := NewDashboardService(store, nil, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestOverviewBucketsTicketsByDayAndTag(t *testing.T) {
	now := time.Date(2018, 3, 31, 12, 0, 0, 0, time.UTC)
	store := &fakeTicketStore{rows: []domain.Ticket{
		ticketOn(time.Date(2018, 3, 30, 9, 0, 0, 0, time.UTC), "happy"),
		ticketOn(time.Date(2018, 3, 30, 15, 0, 0, 0, time.UTC), "unhappy"),
		ticketOn(time.Date(2018, 3, 31, 8, 0, 0, 0, time.UTC)),
	}}

	overview, err := newDashboard(store, now).Overview(context.Background())

	require.NoError(t, err)
	require.Len(t, overview.Labels, 31)
	assert.Equal(t, 3, overview.TotalAll)
	assert.Equal(t, 1, overview.TotalHappy)
	assert.Equal(t, 1, overview.TotalUnhappy)
	// 30 March is the second to last bucket.
	assert.Equal(t, 2, overview.All[29])
	assert.Equal(t, 1, overview.All[30])
	assert.Equal(t, 30, overview.Labels[29])
}

func TestTrendSeriesFiltersByTag(t *testing.T) {
	now := time.Date(2018, 3, 31, 12, 0, 0, 0, time.UTC)
	store := &fakeTicketStore{rows: []domain.Ticket{
		ticketOn(time.Date(2018, 3, 31, 8, 0, 0, 0, time.UTC), "happy"),
		ticketOn(time.Date(2018, 3, 31, 9, 0, 0, 0, time.UTC), "unhappy"),
	}}

	series, err := newDashboard(store, now).TrendSeries(context.Background(), "happy")

	require.NoError(t, err)
	require.Len(t, series, 31)
	assert.Equal(t, 1, series[30])
}

func TestComputeTrendAgainstTrailingWeeks(t *testing.T) {
	series := make([]int, 31)
	// Three prior weeks at 7 tickets each, current week at 14.
	for i := 3; i < 24; i++ {
		series[i] = 1
	}
	for i := 24; i < 31; i++ {
		series[i] = 2
	}
	assert.InDelta(t, 100, computeTrend(series), 0.001)
}

func TestComputeTrendZeroBaseline(t *testing.T) {
	assert.Zero(t, computeTrend(make([]int, 31)))
	assert.Zero(t, computeTrend([]int{1, 2, 3}))
}

func TestSearchTicketsFallsBackToWeekListing(t *testing.T) {
	now := time.Date(2018, 3, 28, 12, 0, 0, 0, time.UTC) // a Wednesday
	store := &fakeTicketStore{rows: []domain.Ticket{
		ticketOn(time.Date(2018, 3, 27, 8, 0, 0, 0, time.UTC)),
	}}
	svc := newDashboard(store, now)

	tickets, err := svc.SearchTickets(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestPreviousOrSameMonday(t *testing.T) {
	monday := time.Date(2018, 3, 26, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, previousOrSameMonday(monday))
	assert.Equal(t, monday, previousOrSameMonday(time.Date(2018, 3, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, monday, previousOrSameMonday(time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC)))
}
