package domain

import "context"

// PredictionInput is the event draft an organizer submits for a success
// forecast. Mirrors the fields the prediction model was trained on.
type PredictionInput struct {
	Category    string   `json:"category"`
	Department  string   `json:"department"`
	TargetYear  string   `json:"target_year"`
	MaxCapacity int      `json:"max_capacity"`
	Tags        []string `json:"tags,omitempty"`
}

// Prediction is the model's forecast for an event draft.
// swagger:model Prediction
type Prediction struct {
	SuccessRate       int    `json:"success_rate"`
	ExpectedAttendees int    `json:"expected_attendees"`
	Engagement        int    `json:"engagement"`
	Sentiment         string `json:"sentiment"`
}

// OrganizerStats aggregates an organizer's events.
// swagger:model OrganizerStats
type OrganizerStats struct {
	TotalEventsCreated   int     `json:"total_events_created"`
	TotalStudentsReached int     `json:"total_students_reached"`
	AverageRating        float64 `json:"average_rating"`
	AverageSuccessRate   float64 `json:"average_success_rate"`
	AttendanceRate       float64 `json:"attendance_rate"`
	TotalCapacity        int     `json:"total_capacity"`
}

// SentimentBreakdown is the percentage split of feedback sentiment across an
// organizer's events.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// TrendingInterest is one interest tag ranked by registrations.
type TrendingInterest struct {
	Interest string `json:"interest"`
	Count    int    `json:"count"`
	Growth   string `json:"growth"`
}

// SimilarStudent is a clustering match for the current viewer.
type SimilarStudent struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Events     int      `json:"events"`
	Similarity int      `json:"similarity"`
	Interests  []string `json:"interests,omitempty"`
}

// InsightsAPI is the consumed boundary for the backend's ML features. All of
// these are opaque passthroughs: the models live server-side.
type InsightsAPI interface {
	PredictSuccess(ctx context.Context, in *PredictionInput) (*Prediction, error)
	OrganizerStats(ctx context.Context) (*OrganizerStats, error)
	SentimentAnalytics(ctx context.Context) (*SentimentBreakdown, error)
	TrendingInterests(ctx context.Context) ([]*TrendingInterest, error)
	SimilarStudents(ctx context.Context) ([]*SimilarStudent, error)
	Contact(ctx context.Context, email, message string) error
}

// InsightsService exposes the ML passthroughs to the rendering layer.
type InsightsService interface {
	PredictSuccess(ctx context.Context, in *PredictionInput) (*Prediction, error)
	OrganizerStats(ctx context.Context) (*OrganizerStats, error)
	SentimentAnalytics(ctx context.Context) (*SentimentBreakdown, error)
	TrendingInterests(ctx context.Context) ([]*TrendingInterest, error)
	SimilarStudents(ctx context.Context) ([]*SimilarStudent, error)
	Contact(ctx context.Context, email, message string) error
}
