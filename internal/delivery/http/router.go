package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(catalog *controllers.CatalogController, auth *controllers.AuthController, insights *controllers.InsightsController) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalog
	mux.HandleFunc("GET /catalog", catalog.List)
	mux.HandleFunc("POST /catalog/refresh", catalog.Refresh)
	mux.HandleFunc("GET /catalog/{eventID}", catalog.GetEvent)
	mux.HandleFunc("POST /catalog/{eventID}/register", catalog.Register)
	mux.HandleFunc("POST /catalog/{eventID}/unregister", catalog.Unregister)
	mux.HandleFunc("POST /catalog/{eventID}/feedback", catalog.SubmitFeedback)

	// Organizer event management
	mux.HandleFunc("GET /organizer/events", catalog.OrganizerEvents)
	mux.HandleFunc("POST /events", catalog.CreateEvent)
	mux.HandleFunc("PATCH /events/{eventID}", catalog.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", catalog.DeleteEvent)

	// Auth
	mux.HandleFunc("POST /auth/signup", auth.SignUp)
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/reset-password", auth.ResetPassword)
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/me", auth.Viewer)

	// Insights
	mux.HandleFunc("POST /insights/predict", insights.Predict)
	mux.HandleFunc("GET /insights/organizer/stats", insights.OrganizerStats)
	mux.HandleFunc("GET /insights/organizer/sentiment", insights.Sentiment)
	mux.HandleFunc("GET /insights/trending", insights.TrendingInterests)
	mux.HandleFunc("GET /insights/similar-students", insights.SimilarStudents)
	mux.HandleFunc("POST /contact", insights.Contact)

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
