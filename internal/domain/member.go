package domain

import "time"

// Authority values granted to members.
const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)

// Member is the domain model for registered members.
type Member struct {
	ID           string
	MemberName   string
	Nickname     string
	PasswordHash string
	Authorities  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
