package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	profileCacheSize   = 1024
	defaultSearchLimit = 25
	maxSearchLimit     = 100
)

type memberService struct {
	repo  Repository
	cache *lru.Cache[string, *Member]
	now   func() time.Time
}

// NewMemberService creates a member service with an in-process profile
// cache. The master file changes rarely, so cached reads are safe for
// display purposes. Anything feeding a transaction reads the repo
// directly.
func NewMemberService(repo Repository) (Service, error) {
	cache, err := lru.New[string, *Member](profileCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}
	return &memberService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}, nil
}

func (s *memberService) GetProfile(ctx context.Context, memberNo string) (*Member, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}

	if cached, ok := s.cache.Get(memberNo); ok {
		return cached, nil
	}

	member, err := s.repo.GetByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, err
	}
	s.cache.Add(memberNo, member)
	return member, nil
}

func (s *memberService) GetMembershipAge(ctx context.Context, memberNo string) (*MembershipAge, error) {
	member, err := s.GetProfile(ctx, memberNo)
	if err != nil {
		return nil, err
	}
	if member.JoinDate == nil {
		return &MembershipAge{}, nil
	}

	years, months := elapsed(*member.JoinDate, s.now())
	return &MembershipAge{Years: years, Months: months}, nil
}

func (s *memberService) GetDividend(ctx context.Context, memberNo string, year int) (*DividendSummary, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	if year <= 0 {
		year = s.now().Year() - 1
	}
	return s.repo.GetDividend(ctx, memberNo, year)
}

func (s *memberService) SearchRegularActive(ctx context.Context, query string, limit int) ([]Member, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.repo.SearchRegularActive(ctx, query, limit)
}

func (s *memberService) NameOf(ctx context.Context, memberNo string) (string, error) {
	member, err := s.GetProfile(ctx, memberNo)
	if err != nil {
		return "", err
	}
	return member.FullName(), nil
}

func (s *memberService) Exists(ctx context.Context, memberNo string) (bool, error) {
	_, err := s.GetProfile(ctx, memberNo)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrMemberNotFound) {
		return false, nil
	}
	return false, err
}

func (s *memberService) InvalidateProfile(memberNo string) {
	s.cache.Remove(strings.TrimSpace(memberNo))
}

// elapsed counts whole years and leftover months between two dates.
func elapsed(from, to time.Time) (years, months int) {
	if to.Before(from) {
		return 0, 0
	}
	years = to.Year() - from.Year()
	months = int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months
}
