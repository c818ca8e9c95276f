package domain

import "context"

// Roles assigned by the campus backend.
const (
	RoleStudent   = "student"
	RoleOrganizer = "organizer"
)

// User is the campus account as cached from a login response.
// swagger:model User
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

// SignUpInput is the payload for creating a campus account. The backend
// validates the password policy; role defaults to student when empty.
type SignUpInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

// ResetPasswordInput carries the uid and token from an emailed reset link
// plus the replacement password. The backend generated the pair and is the
// only party that can check them.
type ResetPasswordInput struct {
	UID      string `json:"uid"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AuthAPI is the consumed authentication boundary. Token issuance is owned
// by the backend; the client only stores what it is handed.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, in *SignUpInput) (*Session, error)
	ResetPassword(ctx context.Context, in *ResetPasswordInput) error
}

// AuthService owns the session lifecycle on the client side: it writes the
// session at login/signup, clears it at logout, and resolves the current
// viewer (nil means anonymous).
type AuthService interface {
	Login(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, in *SignUpInput) (*User, error)
	ResetPassword(ctx context.Context, in *ResetPasswordInput) error
	Logout(ctx context.Context) error
	Viewer(ctx context.Context) (*User, error)
}
