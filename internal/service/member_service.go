package service

import (
	"context"

	"github.com/KingDaeWon/dw-web/internal/domain"
	"github.com/KingDaeWon/dw-web/internal/repository"
)

// MemberService exposes member profile lookups.
type MemberService struct {
	members repository.MemberRepository
}

// NewMemberService builds the service.
func NewMemberService(members repository.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

// FindByID looks up a member by its id.
func (s *MemberService) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}

// FindByMemberName looks up a member by its login name.
func (s *MemberService) FindByMemberName(ctx context.Context, memberName string) (*domain.Member, error) {
	return s.members.GetByMemberName(ctx, memberName)
}
