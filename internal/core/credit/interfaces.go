package credit

import (
	"context"
	"time"
)

// Service handles the credit console login and history lookups.
type Service interface {
	// RequestOTP issues a fresh PIN for the user and delivers it over
	// SMS. Any previous pending PIN is invalidated.
	RequestOTP(ctx context.Context, username string) (*OTPChallenge, error)

	// VerifyOTP consumes a pending PIN. On success the caller owns an
	// authenticated console session for the returned user.
	VerifyOTP(ctx context.Context, username, pin string) (*User, error)

	// LookupUser resolves a console session back to its credit user.
	LookupUser(ctx context.Context, username string) (*User, error)

	GetHistory(ctx context.Context, memberNo string, from, to time.Time) ([]Record, error)
	ListStores(ctx context.Context) ([]Store, error)
}

// Repository handles credit user, OTP and history persistence.
type Repository interface {
	GetUser(ctx context.Context, username string) (*User, error)
	SaveOTP(ctx context.Context, otp *OTP) error
	GetPendingOTP(ctx context.Context, username string) (*OTP, error)
	ConsumeOTP(ctx context.Context, username string) error
	History(ctx context.Context, memberNo string, from, to time.Time) ([]Record, error)
	ListStores(ctx context.Context) ([]Store, error)
}

// SMSSender delivers a text message to one mobile number.
type SMSSender interface {
	Send(ctx context.Context, mobileNo, message string) error
}
