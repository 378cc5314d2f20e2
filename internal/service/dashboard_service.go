package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/persistence"
	"github.com/support-kit/analytics-service/internal/repository"
)

const (
	overviewCacheKey = "dashboard:overview"
	overviewCacheTTL = 5 * time.Minute

	overviewDays = 30
)

// Overview is the main dashboard payload: per-day ticket counts over the
// last 30 days, split by sentiment tag.
type Overview struct {
	Labels       []int `json:"labels"`
	All          []int `json:"all"`
	Unhappy      []int `json:"unhappy"`
	Happy        []int `json:"happy"`
	TotalAll     int   `json:"totalAll"`
	TotalUnhappy int   `json:"totalUnhappy"`
	TotalHappy   int   `json:"totalHappy"`
}

// DashboardService serves read-side aggregations over the ticket view.
type DashboardService struct {
	tickets repository.TicketViewRepository
	redis   *persistence.Redis
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService constructs the service. The redis handle may be nil,
// in which case caching is skipped.
func NewDashboardService(tickets repository.TicketViewRepository, redis *persistence.Redis, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		tickets: tickets,
		redis:   redis,
		logger:  logger,
		now:     time.Now,
	}
}

// Overview returns the 30-day dashboard series, cached for a few minutes
// since the underlying view only changes once per rebuild epoch.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	if cached := s.cachedOverview(ctx); cached != nil {
		return cached, nil
	}

	today := truncateToDay(s.now())
	from := today.AddDate(0, 0, -overviewDays)
	tickets, err := s.tickets.FindByCreatedDateBetween(ctx, from, today.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, err
	}

	overview := &Overview{}
	for day := 0; day <= overviewDays; day++ {
		current := from.AddDate(0, 0, day)
		overview.Labels = append(overview.Labels, current.Day())
		overview.All = append(overview.All, countOnDay(tickets, current, ""))
		overview.Unhappy = append(overview.Unhappy, countOnDay(tickets, current, "unhappy"))
		overview.Happy = append(overview.Happy, countOnDay(tickets, current, "happy"))
	}
	overview.TotalAll = sum(overview.All)
	overview.TotalUnhappy = sum(overview.Unhappy)
	overview.TotalHappy = sum(overview.Happy)

	s.cacheOverview(ctx, overview)
	return overview, nil
}

// TrendSeries returns 31 daily counts for the given tag, oldest first.
// An empty or "all" tag counts every ticket.
func (s *DashboardService) TrendSeries(ctx context.Context, tagName string) ([]int, error) {
	today := truncateToDay(s.now())
	from := today.AddDate(0, 0, -overviewDays)
	tickets, err := s.tickets.FindByCreatedDateBetween(ctx, from, today.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, err
	}

	series := make([]int, 0, overviewDays+1)
	for day := 0; day <= overviewDays; day++ {
		series = append(series, countOnDay(tickets, from.AddDate(0, 0, day), tagName))
	}
	return series, nil
}

// TrendValue returns the current week's ticket total alongside its
// percentage deviation from the average of the three preceding weeks.
func (s *DashboardService) TrendValue(ctx context.Context, tagName string) (total, trend float64, err error) {
	weekStart := previousOrSameMonday(truncateToDay(s.now()))
	weekTickets, err := s.tickets.FindByCreatedDateBetween(ctx, weekStart, truncateToDay(s.now()).AddDate(0, 0, 1), false)
	if err != nil {
		return 0, 0, err
	}
	count := 0
	for _, t := range weekTickets {
		if matchesTag(t, tagName) {
			count++
		}
	}

	series, err := s.TrendSeries(ctx, tagName)
	if err != nil {
		return 0, 0, err
	}
	return float64(count), computeTrend(series), nil
}

// WeekTickets returns the current week's tickets (from Monday), newest
// first.
func (s *DashboardService) WeekTickets(ctx context.Context) ([]domain.Ticket, error) {
	weekStart := previousOrSameMonday(truncateToDay(s.now()))
	return s.tickets.FindByCreatedDateBetween(ctx, weekStart, truncateToDay(s.now()).AddDate(0, 0, 1), true)
}

// SearchTickets runs a full-text search ranked by relevance then recency.
// A blank search falls back to the weekly listing.
func (s *DashboardService) SearchTickets(ctx context.Context, search string) ([]domain.Ticket, error) {
	if len(search) == 0 {
		return s.WeekTickets(ctx)
	}
	return s.tickets.Search(ctx, search)
}

// CountByStatus counts view rows in the given status.
func (s *DashboardService) CountByStatus(ctx context.Context, status string) (int, error) {
	return s.tickets.CountByStatus(ctx, status)
}

// computeTrend compares the newest full week of the series against the
// average of the three weeks before it, as a percentage.
func computeTrend(series []int) float64 {
	if len(series) < 28 {
		return 0
	}
	max := len(series)
	week1 := float64(sum(series[max-7 : max]))
	week2 := float64(sum(series[max-14 : max-7]))
	week3 := float64(sum(series[max-21 : max-14]))
	week4 := float64(sum(series[max-28 : max-21]))
	average := (week2 + week3 + week4) / 3
	if average == 0 {
		return 0
	}
	return (week1 - average) / average * 100
}

func (s *DashboardService) cachedOverview(ctx context.Context) *Overview {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	payload, err := s.redis.Client.Get(ctx, overviewCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var overview Overview
	if err := json.Unmarshal(payload, &overview); err != nil {
		return nil
	}
	return &overview
}

func (s *DashboardService) cacheOverview(ctx context.Context, overview *Overview) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	payload, err := json.Marshal(overview)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, overviewCacheKey, payload, overviewCacheTTL).Err(); err != nil {
		s.logger.Warn("unable to cache dashboard overview", zap.Error(err))
	}
}

func countOnDay(tickets []domain.Ticket, day time.Time, tagName string) int {
	next := day.AddDate(0, 0, 1)
	count := 0
	for _, t := range tickets {
		if t.CreatedDate.Before(day) || !t.CreatedDate.Before(next) {
			continue
		}
		if matchesTag(t, tagName) {
			count++
		}
	}
	return count
}

func matchesTag(t domain.Ticket, tagName string) bool {
	if tagName == "" || tagName == "all" {
		return true
	}
	for _, tag := range t.Tags {
		if tag == tagName {
			return true
		}
	}
	return false
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func previousOrSameMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
