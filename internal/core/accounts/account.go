package accounts

import "time"

// Account statuses.
const (
	StatusPending  = "P"
	StatusActive   = "A"
	StatusDisabled = "D"
)

// WebUser is a member's portal login account. A member may hold at most
// one account, keyed by member number.
type WebUser struct {
	MemberNo     string     `json:"memberNo"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	ActivatedAt  *time.Time `json:"activatedAt,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	MemberNo string `json:"memberNo"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries portal login credentials.
type LoginRequest struct {
	MemberNo string `json:"memberNo"`
	Password string `json:"password"`
}

// MemberCheck answers the signup page's existence questions for one
// member number.
type MemberCheck struct {
	MemberNo      string `json:"memberNo"`
	MemberExists  bool   `json:"memberExists"`
	AccountExists bool   `json:"accountExists"`
	AccountStatus string `json:"accountStatus,omitempty"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token      string `json:"token"`
	MemberNo   string `json:"memberNo"`
	MemberName string `json:"memberName"`
	Email      string `json:"email"`
}
