package restapi

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"campusevents/internal/domain"
)

// authResponse is the token envelope the backend returns from login and
// signup. User ids arrive as numbers, hence the loose user shape.
type authResponse struct {
	Access  string         `json:"access"`
	Refresh string         `json:"refresh"`
	User    map[string]any `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", body, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *Client) SignUp(ctx context.Context, in *domain.SignUpInput) (*domain.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", in, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *Client) ResetPassword(ctx context.Context, in *domain.ResetPasswordInput) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password/", in, nil)
}

func (r *authResponse) session() *domain.Session {
	return &domain.Session{
		AccessToken:  r.Access,
		RefreshToken: r.Refresh,
		User:         userFromPayload(r.User),
	}
}

func userFromPayload(m map[string]any) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:         stringField(m, "id"),
		Email:      stringField(m, "email"),
		FirstName:  stringField(m, "first_name"),
		LastName:   stringField(m, "last_name"),
		Role:       stringField(m, "role"),
		StudentID:  stringField(m, "student_id"),
		Department: stringField(m, "department"),
		Year:       stringField(m, "year"),
	}
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
