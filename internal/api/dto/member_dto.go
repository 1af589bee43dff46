package dto

import "github.com/KingDaeWon/dw-web/internal/domain"

// MemberResponse is the public view of a member. It never carries the
// password hash.
type MemberResponse struct {
	ID          string   `json:"id"`
	MemberName  string   `json:"memberName"`
	Nickname    string   `json:"nickname"`
	Authorities []string `json:"authorities"`
}

// NewMemberResponse maps a member to its public view.
func NewMemberResponse(member *domain.Member) MemberResponse {
	return MemberResponse{
		ID:          member.ID,
		MemberName:  member.MemberName,
		Nickname:    member.Nickname,
		Authorities: member.Authorities,
	}
}
