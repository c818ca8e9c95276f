package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{
		Logger:  logger,
		Service: svc,
	}
}

// CatalogSuccessResponse is the success response envelope for GET /catalog (200).
type CatalogSuccessResponse struct {
	Data  []*domain.AnnotatedEvent `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// List godoc
// @Summary List the event catalog
// @Description Returns the annotated catalog snapshot: normalized events with attendance percentage and the viewer's registration state. Supports search, category, and date filters; all three combine conjunctively.
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive substring matched against title and location"
// @Param category query string false "Category name, or 'all'"
// @Param date query string false "Date bucket: all, today, week, month"
// @Success 200 {object} controllers.CatalogSuccessResponse "data contains the filtered catalog"
// @Failure 502 {object} helpers.APIResponse "error.code: unavailable"
// @Router /catalog [get]
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	opts := domain.FilterOptions{
		Search:     r.URL.Query().Get("search"),
		Category:   r.URL.Query().Get("category"),
		DateBucket: r.URL.Query().Get("date"),
	}
	events, err := c.Service.Catalog(r.Context(), opts)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// EventSuccessResponse is the success response envelope for GET /catalog/{eventID} (200).
type EventSuccessResponse struct {
	Data  *domain.AnnotatedEvent `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// GetEvent godoc
// @Summary Get a single event
// @Description Returns one annotated event by id. Unlike the catalog listing, incompletely configured events (zero capacity, missing date) are still returned here.
// @Tags catalog
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: unavailable"
// @Router /catalog/{eventID} [get]
func (c *CatalogController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// OrganizerEvents godoc
// @Summary List the viewer's own events
// @Description Returns the events owned by the logged-in organizer, including ones the public catalog hides (zero capacity, missing date). Drives the edit and delete actions.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.CatalogSuccessResponse "data contains the organizer's events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /organizer/events [get]
func (c *CatalogController) OrganizerEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.OrganizerEvents(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Refresh godoc
// @Summary Refetch the catalog
// @Description Forces a refetch from the event service and replaces the current snapshot.
// @Tags catalog
// @Produce json
// @Success 204 "snapshot replaced"
// @Failure 502 {object} helpers.APIResponse "error.code: unavailable"
// @Router /catalog/refresh [post]
func (c *CatalogController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Refresh(r.Context()); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register godoc
// @Summary Register for an event
// @Description Registers the viewer for an event. An upstream conflict (already registered) counts as success, since the desired end state holds either way.
// @Tags catalog
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 204 "registered"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: unavailable"
// @Router /catalog/{eventID}/register [post]
func (c *CatalogController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Register(r.Context(), eventID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unregister godoc
// @Summary Cancel an event registration
// @Tags catalog
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 204 "unregistered"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /catalog/{eventID}/unregister [post]
func (c *CatalogController) Unregister(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Unregister(r.Context(), eventID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FeedbackRequest is the request body for POST /catalog/{eventID}/feedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (f FeedbackRequest) Validate() []string {
	var errs []string
	if f.Rating < 1 || f.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if f.Comment == "" {
		errs = append(errs, "comment is required")
	}
	return errs
}

// FeedbackSuccessResponse is the success response envelope for POST /catalog/{eventID}/feedback (201).
type FeedbackSuccessResponse struct {
	Data  *domain.Feedback  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SubmitFeedback godoc
// @Summary Submit feedback for an attended event
// @Tags catalog
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param feedback body FeedbackRequest true "Rating (1-5) and comment"
// @Success 201 {object} controllers.FeedbackSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /catalog/{eventID}/feedback [post]
func (c *CatalogController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req FeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fb, err := c.Service.SubmitFeedback(r.Context(), eventID, &domain.FeedbackInput{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, fb)
}

// EventRequest is the request body for creating or editing an event.
type EventRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
	Time        string                `json:"time"`
	Location    string                `json:"location"`
	Category    string                `json:"category"`
	MaxCapacity int                   `json:"max_capacity"`
	TargetYear  string                `json:"target_year"`
	Department  string                `json:"department"`
	Tags        []string              `json:"tags"`
	Schedule    []domain.ScheduleItem `json:"schedule"`
}

// Validate implements Validator. Creation requires title, date, and a
// positive capacity; edits go through UpdateEvent which skips this.
func (e EventRequest) Validate() []string {
	var errs []string
	if e.Title == "" {
		errs = append(errs, "title is required")
	}
	if e.Date == "" {
		errs = append(errs, "date is required")
	}
	if e.MaxCapacity <= 0 {
		errs = append(errs, "max_capacity must be positive")
	}
	return errs
}

func (e EventRequest) input() *domain.EventInput {
	return &domain.EventInput{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Category:    e.Category,
		MaxCapacity: e.MaxCapacity,
		TargetYear:  e.TargetYear,
		Department:  e.Department,
		Tags:        e.Tags,
		Schedule:    e.Schedule,
	}
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.EventRecord `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event through the event service. Requires an organizer session.
// @Tags events
// @Accept json
// @Produce json
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events [post]
func (c *CatalogController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rec, err := c.Service.CreateEvent(r.Context(), req.input())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rec)
}

// updateEventRequest skips creation validation; partial edits are allowed.
type updateEventRequest struct {
	EventRequest
}

func (updateEventRequest) Validate() []string { return nil }

// UpdateEvent godoc
// @Summary Edit an event
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Fields to change"
// @Success 200 {object} controllers.CreateEventSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *CatalogController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req updateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rec, err := c.Service.UpdateEvent(r.Context(), eventID, req.input())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 204 "deleted"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *CatalogController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
