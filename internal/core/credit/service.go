package credit

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"CoopLink/internal/auth/password"
)

const pinLength = 6

type creditService struct {
	repo   Repository
	sms    SMSSender
	otpTTL time.Duration
	now    func() time.Time
}

func NewCreditService(repo Repository, sms SMSSender, otpTTL time.Duration) Service {
	return &creditService{
		repo:   repo,
		sms:    sms,
		otpTTL: otpTTL,
		now:    time.Now,
	}
}

func (s *creditService) RequestOTP(ctx context.Context, username string) (*OTPChallenge, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserDisabled
	}
	if user.MobileNo == "" {
		return nil, ErrNoMobile
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PIN: %w", err)
	}

	// Only the hash is stored; the plaintext PIN exists in the SMS and
	// nowhere else.
	hash, err := password.Hash(pin)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	if err := s.repo.SaveOTP(ctx, &OTP{
		Username:  user.Username,
		PinHash:   hash,
		ExpiresAt: s.now().Add(s.otpTTL),
	}); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your coop credit login PIN is %s. It expires in %d minutes.", pin, int(s.otpTTL.Minutes()))
	if err := s.sms.Send(ctx, user.MobileNo, msg); err != nil {
		return nil, fmt.Errorf("failed to send PIN: %w", err)
	}

	return &OTPChallenge{
		Username:     user.Username,
		MaskedMobile: maskMobile(user.MobileNo),
		TTLSeconds:   int(s.otpTTL.Seconds()),
	}, nil
}

func (s *creditService) VerifyOTP(ctx context.Context, username, pin string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	pin = strings.TrimSpace(pin)
	if username == "" || pin == "" {
		return nil, fmt.Errorf("%w: username and PIN are required", ErrInvalidInput)
	}

	otp, err := s.repo.GetPendingOTP(ctx, username)
	if err != nil {
		return nil, err
	}
	if s.now().After(otp.ExpiresAt) {
		return nil, ErrOTPExpired
	}
	if err := password.Compare(otp.PinHash, pin); err != nil {
		return nil, ErrOTPMismatch
	}

	if err := s.repo.ConsumeOTP(ctx, username); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, username)
}

func (s *creditService) LookupUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *creditService) GetHistory(ctx context.Context, memberNo string, from, to time.Time) ([]Record, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -3, 0)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: date range is reversed", ErrInvalidInput)
	}
	return s.repo.History(ctx, memberNo, from, to)
}

func (s *creditService) ListStores(ctx context.Context) ([]Store, error) {
	return s.repo.ListStores(ctx)
}

func generatePIN() (string, error) {
	digits := make([]byte, pinLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// maskMobile keeps the last two digits visible.
func maskMobile(mobile string) string {
	if len(mobile) <= 2 {
		return mobile
	}
	return strings.Repeat("*", len(mobile)-2) + mobile[len(mobile)-2:]
}
