package sysconfig

import (
	"context"
	"errors"
	"fmt"
)

// Service exposes the typed configuration values layered over the raw
// sys_config store.
type Service interface {
	ElectionWindow(ctx context.Context) (*ElectionWindow, error)
	SetElectionWindow(ctx context.Context, w ElectionWindow) error

	ElecomList(ctx context.Context) (*MemberList, error)
	AddElecomMember(ctx context.Context, memberNo string) error
	RemoveElecomMember(ctx context.Context, memberNo string) error
	IsElecomMember(ctx context.Context, memberNo string) (bool, error)

	SurveyAdminList(ctx context.Context) (*MemberList, error)
	IsSurveyAdmin(ctx context.Context, memberNo string) (bool, error)
}

type configService struct {
	store Store
}

func NewService(store Store) Service {
	return &configService{store: store}
}

func (s *configService) ElectionWindow(ctx context.Context) (*ElectionWindow, error) {
	raw, err := s.store.Get(ctx, AppName, SectionElection, KeyValue)
	if err != nil {
		return nil, err
	}
	return ParseElectionWindow(raw)
}

func (s *configService) SetElectionWindow(ctx context.Context, w ElectionWindow) error {
	if w.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidValue)
	}
	raw, err := w.Serialize()
	if err != nil {
		return err
	}
	return s.store.Set(ctx, AppName, SectionElection, KeyValue, raw)
}

func (s *configService) ElecomList(ctx context.Context) (*MemberList, error) {
	return s.memberList(ctx, SectionElecom)
}

func (s *configService) AddElecomMember(ctx context.Context, memberNo string) error {
	list, err := s.memberList(ctx, SectionElecom)
	if err != nil {
		return err
	}
	if !list.Add(memberNo) {
		return nil
	}
	return s.saveMemberList(ctx, SectionElecom, list)
}

func (s *configService) RemoveElecomMember(ctx context.Context, memberNo string) error {
	list, err := s.memberList(ctx, SectionElecom)
	if err != nil {
		return err
	}
	if !list.Remove(memberNo) {
		return nil
	}
	return s.saveMemberList(ctx, SectionElecom, list)
}

func (s *configService) IsElecomMember(ctx context.Context, memberNo string) (bool, error) {
	list, err := s.memberList(ctx, SectionElecom)
	if err != nil {
		return false, err
	}
	return list.Contains(memberNo), nil
}

func (s *configService) SurveyAdminList(ctx context.Context) (*MemberList, error) {
	return s.memberList(ctx, SectionSurvey)
}

func (s *configService) IsSurveyAdmin(ctx context.Context, memberNo string) (bool, error) {
	list, err := s.memberList(ctx, SectionSurvey)
	if err != nil {
		return false, err
	}
	return list.Contains(memberNo), nil
}

// memberList loads an access list, treating a missing row as empty.
func (s *configService) memberList(ctx context.Context, section string) (*MemberList, error) {
	raw, err := s.store.Get(ctx, AppName, section, KeyUser)
	if errors.Is(err, ErrNotFound) {
		return NewMemberList(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseMemberList(raw)
}

func (s *configService) saveMemberList(ctx context.Context, section string, list *MemberList) error {
	raw, err := list.Serialize()
	if err != nil {
		return err
	}
	return s.store.Set(ctx, AppName, section, KeyUser, raw)
}
