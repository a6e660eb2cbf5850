package members

import "context"

// Service exposes membership master lookups.
type Service interface {
	GetProfile(ctx context.Context, memberNo string) (*Member, error)
	GetMembershipAge(ctx context.Context, memberNo string) (*MembershipAge, error)
	GetDividend(ctx context.Context, memberNo string, year int) (*DividendSummary, error)
	SearchRegularActive(ctx context.Context, query string, limit int) ([]Member, error)

	// NameOf and Exists satisfy the directory checks other services
	// run against the master file.
	NameOf(ctx context.Context, memberNo string) (string, error)
	Exists(ctx context.Context, memberNo string) (bool, error)

	// InvalidateProfile drops a cached profile after an upstream edit.
	InvalidateProfile(memberNo string)
}

// Repository handles membership master persistence.
type Repository interface {
	GetByMemberNo(ctx context.Context, memberNo string) (*Member, error)
	GetDividend(ctx context.Context, memberNo string, year int) (*DividendSummary, error)
	SearchRegularActive(ctx context.Context, query string, limit int) ([]Member, error)
}
