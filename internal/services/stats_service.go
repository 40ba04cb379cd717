package services

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// TopRuleCount is how many rules the summary ranks.
const TopRuleCount = 5

// Stats is the admin dashboard summary.
type Stats struct {
	TotalTurns     int64          `json:"total_messages"`
	MatchedTurns   int64          `json:"matched_messages"`
	MatchRate      float64        `json:"match_rate"`
	UniqueVisitors int64          `json:"unique_visitors"`
	TurnsToday     int64          `json:"today_messages"`
	TopRules       []repo.TopRule `json:"top_questions"`
}

// StatsService computes Stats from the chat log and rule hit counters. It
// holds no state and recomputes every call.
type StatsService struct {
	DB *gorm.DB

	// Now and Location define "today". Nil values mean time.Now and
	// time.Local.
	Now      func() time.Time
	Location *time.Location
}

var statsTracer = otel.Tracer("services/StatsService")

// Summary returns the current aggregate view.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	ctx, span := statsTracer.Start(ctx, "Summary")
	defer span.End()

	total, err := repo.CountTurns(ctx, s.DB)
	if err != nil {
		return nil, storage("count turns", err)
	}
	matched, err := repo.CountMatchedTurns(ctx, s.DB)
	if err != nil {
		return nil, storage("count matched turns", err)
	}
	visitors, err := repo.CountDistinctVisitors(ctx, s.DB)
	if err != nil {
		return nil, storage("count visitors", err)
	}
	from, to := s.today()
	today, err := repo.CountTurnsBetween(ctx, s.DB, from, to)
	if err != nil {
		return nil, storage("count today", err)
	}
	top, err := repo.TopRules(ctx, s.DB, TopRuleCount)
	if err != nil {
		return nil, storage("top rules", err)
	}

	return &Stats{
		TotalTurns:     total,
		MatchedTurns:   matched,
		MatchRate:      MatchRate(matched, total),
		UniqueVisitors: visitors,
		TurnsToday:     today,
		TopRules:       top,
	}, nil
}

// MatchRate returns matched/total as a percentage rounded to one decimal,
// or 0 when total is 0.
func MatchRate(matched, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*1000) / 10
}

// today returns [midnight, next midnight) in the service location. The end
// is computed with AddDate so DST days keep their real length.
func (s *StatsService) today() (time.Time, time.Time) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	t := now().In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
