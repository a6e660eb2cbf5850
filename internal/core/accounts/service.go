package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"CoopLink/internal/auth/password"
	"CoopLink/internal/auth/token"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type accountService struct {
	repo           Repository
	members        MemberDirectory
	mailer         Mailer
	portalBaseURL  string
	masterPassword string
}

// NewAccountService creates a new account service. masterPassword may
// be empty, which disables the support override entirely.
func NewAccountService(repo Repository, members MemberDirectory, mailer Mailer, portalBaseURL, masterPassword string) Service {
	return &accountService{
		repo:           repo,
		members:        members,
		mailer:         mailer,
		portalBaseURL:  portalBaseURL,
		masterPassword: masterPassword,
	}
}

// Register creates a pending account and mails an activation link. The
// account cannot log in until the link is followed.
func (s *accountService) Register(ctx context.Context, req RegisterRequest) (*WebUser, error) {
	req.MemberNo = strings.TrimSpace(req.MemberNo)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.MemberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if err := password.Validate(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.members.Exists(ctx, req.MemberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &WebUser{
		MemberNo:     req.MemberNo,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       StatusPending,
	})
	if err != nil {
		return nil, err
	}

	registerToken, err := token.Mint(user.MemberNo, token.PurposeRegister)
	if err != nil {
		return nil, fmt.Errorf("failed to mint registration token: %w", err)
	}

	name, err := s.members.NameOf(ctx, user.MemberNo)
	if err != nil {
		name = user.MemberNo
	}
	if err := s.mailer.SendActivation(ctx, user.Email, name, s.link("/activate", registerToken)); err != nil {
		// The account exists either way; registration can be retried
		// from the resend flow.
		log.Printf("[MAIL_FAILURE] activation mail for %s: %v", user.MemberNo, err)
	}

	return user, nil
}

// Activate flips a pending account to active using the mailed token.
func (s *accountService) Activate(ctx context.Context, registerToken string) (*WebUser, error) {
	claims, err := token.Verify(registerToken, token.PurposeRegister)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.repo.GetByMemberNo(ctx, claims.MemberNo)
	if err != nil {
		return nil, err
	}
	if user.Status == StatusActive {
		return nil, ErrAlreadyActive
	}

	if err := s.repo.SetStatus(ctx, user.MemberNo, StatusActive); err != nil {
		return nil, err
	}
	user.Status = StatusActive
	return user, nil
}

// ResendActivation mails a fresh activation link to a pending account.
func (s *accountService) ResendActivation(ctx context.Context, memberNo string) error {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}

	user, err := s.repo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}
	if user.Status == StatusActive {
		return ErrAlreadyActive
	}

	registerToken, err := token.Mint(user.MemberNo, token.PurposeRegister)
	if err != nil {
		return fmt.Errorf("failed to mint registration token: %w", err)
	}

	name, err := s.members.NameOf(ctx, user.MemberNo)
	if err != nil {
		name = user.MemberNo
	}
	return s.mailer.SendActivation(ctx, user.Email, name, s.link("/activate", registerToken))
}

// CheckMember answers the signup page's existence questions: is this a
// real member, and does it already hold an account.
func (s *accountService) CheckMember(ctx context.Context, memberNo string) (*MemberCheck, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}

	exists, err := s.members.Exists(ctx, memberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	check := &MemberCheck{MemberNo: memberNo, MemberExists: exists}
	user, err := s.repo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return check, nil
		}
		return nil, err
	}
	check.AccountExists = true
	check.AccountStatus = user.Status
	return check, nil
}

func (s *accountService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.MemberNo = strings.TrimSpace(req.MemberNo)
	if req.MemberNo == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: member number and password are required", ErrInvalidInput)
	}

	user, err := s.repo.GetByMemberNo(ctx, req.MemberNo)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.isMasterPassword(req.Password) {
		if err := password.Compare(user.PasswordHash, req.Password); err != nil {
			log.Printf("[AUTH_FAILURE] login failed for member %s", req.MemberNo)
			return nil, ErrInvalidCredentials
		}
	}

	if user.Status != StatusActive {
		return nil, ErrAccountNotActive
	}

	accessToken, err := token.Mint(user.MemberNo, token.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, user.MemberNo); err != nil {
		log.Printf("failed to record last login for %s: %v", user.MemberNo, err)
	}

	name, err := s.members.NameOf(ctx, user.MemberNo)
	if err != nil {
		name = user.MemberNo
	}

	return &LoginResult{
		Token:      accessToken,
		MemberNo:   user.MemberNo,
		MemberName: name,
		Email:      user.Email,
	}, nil
}

// ForgotPassword mails a reset link. Callers get the same answer
// whether or not the account exists.
func (s *accountService) ForgotPassword(ctx context.Context, memberNo string) error {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}

	user, err := s.repo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			log.Printf("[AUTH_FAILURE] password reset requested for unknown member %s", memberNo)
			return nil
		}
		return err
	}

	resetToken, err := token.Mint(user.MemberNo, token.PurposeReset)
	if err != nil {
		return fmt.Errorf("failed to mint reset token: %w", err)
	}

	name, err := s.members.NameOf(ctx, user.MemberNo)
	if err != nil {
		name = user.MemberNo
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, name, s.link("/reset-password", resetToken))
}

func (s *accountService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := token.Verify(resetToken, token.PurposeReset)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.SetPasswordHash(ctx, claims.MemberNo, hash)
}

func (s *accountService) ChangePassword(ctx context.Context, memberNo, oldPassword, newPassword string) error {
	user, err := s.repo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.SetPasswordHash(ctx, user.MemberNo, hash)
}

func (s *accountService) GetAccount(ctx context.Context, memberNo string) (*WebUser, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	return s.repo.GetByMemberNo(ctx, memberNo)
}

func (s *accountService) isMasterPassword(candidate string) bool {
	return s.masterPassword != "" && candidate == s.masterPassword
}

func (s *accountService) link(path, tok string) string {
	return fmt.Sprintf("%s%s?token=%s", strings.TrimRight(s.portalBaseURL, "/"), path, url.QueryEscape(tok))
}
