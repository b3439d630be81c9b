package services

import (
	"fmt"
	"time"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
)

const defaultTopItemLimit = 10

// --- AnalyticsService Interface ---
type AnalyticsService interface {
	Summary(restaurantID string, rng models.AnalyticsRange) (*models.AnalyticsSummary, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	feedbackRepo  repositories.FeedbackRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(ar repositories.AnalyticsRepository, fr repositories.FeedbackRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: ar, feedbackRepo: fr}
}

// resolveRange parses the requested window, defaulting to the last 30 days.
// The upper bound is exclusive (start of the day after To).
func resolveRange(rng models.AnalyticsRange) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if rng.From != "" {
		parsed, err := time.Parse("2006-01-02", rng.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date %q", ErrValidation, rng.From)
		}
		from = parsed
	}
	if rng.To != "" {
		parsed, err := time.Parse("2006-01-02", rng.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date %q", ErrValidation, rng.To)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to date must not precede from date", ErrValidation)
	}
	return from, to, nil
}

func (s *analyticsService) Summary(restaurantID string, rng models.AnalyticsRange) (*models.AnalyticsSummary, error) {
	from, to, err := resolveRange(rng)
	if err != nil {
		return nil, err
	}

	revenue, orders, err := s.analyticsRepo.Totals(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	byDay, err := s.analyticsRepo.RevenueByDay(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	topItems, err := s.analyticsRepo.TopItems(restaurantID, from, to, defaultTopItemLimit)
	if err != nil {
		return nil, err
	}
	byType, err := s.analyticsRepo.BreakdownByOrderType(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	bySource, err := s.analyticsRepo.BreakdownBySource(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	byHour, err := s.analyticsRepo.BreakdownByHour(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	feedbackStats, err := s.feedbackRepo.Stats(restaurantID)
	if err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{
		TotalRevenue:  revenue,
		TotalOrders:   orders,
		RevenueByDay:  byDay,
		TopItems:      topItems,
		ByOrderType:   byType,
		BySource:      bySource,
		ByHour:        byHour,
		FeedbackStats: feedbackStats,
	}
	if orders > 0 {
		summary.AvgOrderValue = revenue / float64(orders)
	}
	return summary, nil
}
