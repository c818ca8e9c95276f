package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type InsightsController struct {
	Logger  *slog.Logger
	Service domain.InsightsService
}

func NewInsightsController(logger *slog.Logger, svc domain.InsightsService) *InsightsController {
	return &InsightsController{
		Logger:  logger,
		Service: svc,
	}
}

// PredictRequest is the request body for POST /insights/predict.
type PredictRequest struct {
	Category    string   `json:"category"`
	Department  string   `json:"department"`
	TargetYear  string   `json:"target_year"`
	MaxCapacity int      `json:"max_capacity"`
	Tags        []string `json:"tags"`
}

// Validate implements Validator.
func (p PredictRequest) Validate() []string {
	var errs []string
	if p.Category == "" {
		errs = append(errs, "category is required")
	}
	if p.MaxCapacity <= 0 {
		errs = append(errs, "max_capacity must be positive")
	}
	return errs
}

// PredictSuccessResponse is the success response envelope for POST /insights/predict (200).
type PredictSuccessResponse struct {
	Data  *domain.Prediction `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Predict godoc
// @Summary Forecast an event draft's success
// @Description Passes the draft to the event service's prediction model and relays the forecast.
// @Tags insights
// @Accept json
// @Produce json
// @Param draft body PredictRequest true "Event draft"
// @Success 200 {object} controllers.PredictSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /insights/predict [post]
func (c *InsightsController) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.PredictSuccess(r.Context(), &domain.PredictionInput{
		Category:    req.Category,
		Department:  req.Department,
		TargetYear:  req.TargetYear,
		MaxCapacity: req.MaxCapacity,
		Tags:        req.Tags,
	})
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// OrganizerStats godoc
// @Summary Organizer dashboard stats
// @Tags insights
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains aggregate stats"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /insights/organizer/stats [get]
func (c *InsightsController) OrganizerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.OrganizerStats(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Sentiment godoc
// @Summary Feedback sentiment breakdown
// @Tags insights
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains positive/neutral/negative percentages"
// @Router /insights/organizer/sentiment [get]
func (c *InsightsController) Sentiment(w http.ResponseWriter, r *http.Request) {
	b, err := c.Service.SentimentAnalytics(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// TrendingInterests godoc
// @Summary Trending interest tags
// @Tags insights
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains ranked interests"
// @Router /insights/trending [get]
func (c *InsightsController) TrendingInterests(w http.ResponseWriter, r *http.Request) {
	trends, err := c.Service.TrendingInterests(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trends)
}

// SimilarStudents godoc
// @Summary Students with similar interests
// @Tags insights
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains clustering matches for the viewer"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /insights/similar-students [get]
func (c *InsightsController) SimilarStudents(w http.ResponseWriter, r *http.Request) {
	students, err := c.Service.SimilarStudents(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, students)
}

// ContactRequest is the request body for POST /contact.
type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (c ContactRequest) Validate() []string {
	var errs []string
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	if c.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// Contact godoc
// @Summary Send a contact message
// @Tags insights
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Sender email and message"
// @Success 204 "message relayed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /contact [post]
func (c *InsightsController) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Contact(r.Context(), req.Email, req.Message); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
