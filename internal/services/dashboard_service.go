package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

const topLocationsLimit = 10

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, log *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, log: log, now: time.Now}
}

// normalizeRange defaults to the last 30 days and orders start before end.
// A caller-supplied end at midnight UTC is a date and covers that whole day.
func normalizeRange(r resp.TimeRange, now time.Time) resp.TimeRange {
	out := r
	explicitEnd := !out.End.IsZero()
	if !explicitEnd {
		out.End = now.UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	if explicitEnd && out.End.Equal(utils.TodayUTC(out.End)) {
		out.End = out.End.UTC().AddDate(0, 0, 1).Add(-time.Second)
	}
	return out
}

// DailySeries buckets unix timestamps per UTC day, emitting a point for every
// day in the range including empty ones.
func DailySeries(start, end time.Time, stamps []int64) []resp.SeriesPoint {
	counts := make(map[string]int64, len(stamps))
	for _, ts := range stamps {
		counts[time.Unix(ts, 0).UTC().Format(utils.DateLayout)]++
	}

	var out []resp.SeriesPoint
	for day := utils.TodayUTC(start); !day.After(end.UTC()); day = day.AddDate(0, 0, 1) {
		key := day.Format(utils.DateLayout)
		out = append(out, resp.SeriesPoint{Bucket: key, Value: counts[key]})
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng, s.now())

	var kpi resp.KPIBlock
	counters := []struct {
		name string
		dst  *int64
		fn   func(context.Context) (int64, error)
	}{
		{"total users", &kpi.TotalUsers, s.repo.CountTotalUsers},
		{"new users", &kpi.NewUsers, func(ctx context.Context) (int64, error) {
			return s.repo.CountNewUsers(ctx, rng.Start, rng.End)
		}},
		{"total trips", &kpi.TotalTrips, s.repo.CountTotalTrips},
		{"itinerary items", &kpi.TotalItineraryItems, s.repo.CountItineraryItems},
		{"shared trips", &kpi.SharedTrips, s.repo.CountSharedTrips},
		{"reviews", &kpi.TotalReviews, s.repo.CountReviews},
	}
	for _, c := range counters {
		n, err := c.fn(ctx)
		if err != nil {
			s.log.Error("dashboard counter", zap.String("counter", c.name), zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		*c.dst = n
	}

	avg, err := s.repo.AverageBudgetTotal(ctx)
	if err != nil {
		s.log.Error("dashboard average budget", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	kpi.AverageBudgetTotal = avg

	signups, err := s.repo.UserSignupTimes(ctx, rng.Start, rng.End)
	if err != nil {
		s.log.Error("dashboard signups", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	rows, err := s.repo.TopLocations(ctx, rng.Start, rng.End, topLocationsLimit)
	if err != nil {
		s.log.Error("dashboard top locations", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	top := make([]resp.TopLocation, 0, len(rows))
	for _, r := range rows {
		top = append(top, resp.TopLocation{LocationID: r.LocationID, Name: r.Name, Trips: r.Count})
	}

	return &resp.DashboardReport{
		Range:          rng,
		KPIs:           kpi,
		NewUsersSeries: DailySeries(rng.Start, rng.End, signups),
		TopLocations:   top,
		GeneratedAt:    s.now().UTC(),
	}, nil
}
