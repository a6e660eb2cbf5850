package accounts

import "context"

// Service handles portal account registration and authentication.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*WebUser, error)
	Activate(ctx context.Context, registerToken string) (*WebUser, error)
	ResendActivation(ctx context.Context, memberNo string) error
	CheckMember(ctx context.Context, memberNo string) (*MemberCheck, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	ForgotPassword(ctx context.Context, memberNo string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	ChangePassword(ctx context.Context, memberNo, oldPassword, newPassword string) error
	GetAccount(ctx context.Context, memberNo string) (*WebUser, error)
}

// Repository handles web user persistence.
type Repository interface {
	Create(ctx context.Context, user *WebUser) (*WebUser, error)
	GetByMemberNo(ctx context.Context, memberNo string) (*WebUser, error)
	SetStatus(ctx context.Context, memberNo, status string) error
	SetPasswordHash(ctx context.Context, memberNo, hash string) error
	TouchLastLogin(ctx context.Context, memberNo string) error
}

// MemberDirectory resolves membership master records for registration
// checks and mail personalization.
type MemberDirectory interface {
	NameOf(ctx context.Context, memberNo string) (string, error)
	Exists(ctx context.Context, memberNo string) (bool, error)
}

// Mailer delivers account lifecycle mail.
type Mailer interface {
	SendActivation(ctx context.Context, to, memberName, activationURL string) error
	SendPasswordReset(ctx context.Context, to, memberName, resetURL string) error
}
