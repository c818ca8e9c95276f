package restapi

import (
	"context"
	"net/http"

	"campusevents/internal/domain"
)

func (c *Client) PredictSuccess(ctx context.Context, in *domain.PredictionInput) (*domain.Prediction, error) {
	var p domain.Prediction
	if err := c.do(ctx, http.MethodPost, "/predict/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) OrganizerStats(ctx context.Context) (*domain.OrganizerStats, error) {
	var stats domain.OrganizerStats
	if err := c.do(ctx, http.MethodGet, "/organizer/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) SentimentAnalytics(ctx context.Context) (*domain.SentimentBreakdown, error) {
	var b domain.SentimentBreakdown
	if err := c.do(ctx, http.MethodGet, "/organizer/sentiment-analysis/", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) TrendingInterests(ctx context.Context) ([]*domain.TrendingInterest, error) {
	var trends []*domain.TrendingInterest
	if err := c.do(ctx, http.MethodGet, "/organizer/trending-interests/", nil, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

// similarStudentPayload tolerates numeric user ids and similarity scores.
type similarStudentPayload struct {
	UserID     any      `json:"user_id"`
	Name       string   `json:"name"`
	Events     int      `json:"events"`
	Similarity int      `json:"similarity"`
	Interests  []string `json:"interests"`
}

func (c *Client) SimilarStudents(ctx context.Context) ([]*domain.SimilarStudent, error) {
	var payload []similarStudentPayload
	if err := c.do(ctx, http.MethodGet, "/students/similar/", nil, &payload); err != nil {
		return nil, err
	}
	students := make([]*domain.SimilarStudent, 0, len(payload))
	for _, p := range payload {
		students = append(students, &domain.SimilarStudent{
			UserID:     stringField(map[string]any{"user_id": p.UserID}, "user_id"),
			Name:       p.Name,
			Events:     p.Events,
			Similarity: p.Similarity,
			Interests:  p.Interests,
		})
	}
	return students, nil
}

func (c *Client) Contact(ctx context.Context, email, message string) error {
	body := map[string]string{"email": email, "message": message}
	return c.do(ctx, http.MethodPost, "/contact/", body, nil)
}
