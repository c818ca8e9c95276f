package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Email == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// UserSuccessResponse is the success response envelope carrying a user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Login godoc
// @Summary Log in
// @Description Exchanges credentials for a session. Tokens are stored server-side; the response carries only the user profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

// Validate implements Validator. The backend owns the password policy; only
// presence is checked here.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if s.Email == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	if s.Role != "" && s.Role != domain.RoleStudent && s.Role != domain.RoleOrganizer {
		errs = append(errs, "role must be student or organizer")
	}
	return errs
}

// SignUp godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body SignUpRequest true "Account details"
// @Success 201 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), &domain.SignUpInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		StudentID:  req.StudentID,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// ResetPasswordRequest is the request body for POST /auth/reset-password.
// UID and token come from the reset link the backend emailed.
type ResetPasswordRequest struct {
	UID      string `json:"uid"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (r ResetPasswordRequest) Validate() []string {
	var errs []string
	if r.UID == "" {
		errs = append(errs, "uid is required")
	}
	if r.Token == "" {
		errs = append(errs, "token is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// ResetPassword godoc
// @Summary Reset a forgotten password
// @Description Relays the uid/token pair from an emailed reset link together with the new password. The backend validates the pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body ResetPasswordRequest true "Reset link uid, token, and the new password"
// @Success 204 "password changed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.ResetPassword(r.Context(), &domain.ResetPasswordInput{
		UID:      req.UID,
		Token:    req.Token,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored session. Always succeeds for an anonymous viewer.
// @Tags auth
// @Produce json
// @Success 204 "session cleared"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Logout(r.Context()); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Viewer godoc
// @Summary Current viewer
// @Description Returns the logged-in user, or null data when the viewer is anonymous or the stored token has expired.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.UserSuccessResponse "data is null for an anonymous viewer"
// @Router /auth/me [get]
func (c *AuthController) Viewer(w http.ResponseWriter, r *http.Request) {
	user, err := c.Service.Viewer(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
