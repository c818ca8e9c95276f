package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type insightsService struct {
	api            domain.InsightsAPI
	contextTimeout time.Duration
}

// NewInsightsService wraps the backend's ML endpoints. Everything here is a
// passthrough: predictions, sentiment, and clustering are computed
// server-side and only rendered by this client.
func NewInsightsService(api domain.InsightsAPI, timeout time.Duration) domain.InsightsService {
	return &insightsService{api: api, contextTimeout: timeout}
}

func (s *insightsService) PredictSuccess(ctx context.Context, in *domain.PredictionInput) (*domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Category == "" || in.MaxCapacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.api.PredictSuccess(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("predict success: %w", err)
	}
	return p, nil
}

func (s *insightsService) OrganizerStats(ctx context.Context) (*domain.OrganizerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.api.OrganizerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("organizer stats: %w", err)
	}
	return stats, nil
}

func (s *insightsService) SentimentAnalytics(ctx context.Context) (*domain.SentimentBreakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	b, err := s.api.SentimentAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("sentiment analytics: %w", err)
	}
	return b, nil
}

func (s *insightsService) TrendingInterests(ctx context.Context) ([]*domain.TrendingInterest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trends, err := s.api.TrendingInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("trending interests: %w", err)
	}
	if trends == nil {
		trends = []*domain.TrendingInterest{}
	}
	return trends, nil
}

func (s *insightsService) SimilarStudents(ctx context.Context) ([]*domain.SimilarStudent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	students, err := s.api.SimilarStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("similar students: %w", err)
	}
	if students == nil {
		students = []*domain.SimilarStudent{}
	}
	return students, nil
}

func (s *insightsService) Contact(ctx context.Context, email, message string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(message) == "" {
		return domain.ErrInvalidInput
	}
	if err := s.api.Contact(ctx, email, message); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	return nil
}
