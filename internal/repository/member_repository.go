package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KingDaeWon/dw-web/internal/domain"
)

// MemberRepository defines persistence access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByMemberName(ctx context.Context, memberName string) (*domain.Member, error)
	ExistsByMemberName(ctx context.Context, memberName string) (bool, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (member_name, nickname, password_hash, authorities)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.MemberName,
		member.Nickname,
		member.PasswordHash,
		member.Authorities,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, member_name, nickname, password_hash, authorities, created_at, updated_at
        FROM members WHERE id=$1`

	return r.scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *memberRepository) GetByMemberName(ctx context.Context, memberName string) (*domain.Member, error) {
	const query = `
        SELECT id, member_name, nickname, password_hash, authorities, created_at, updated_at
        FROM members WHERE member_name=$1`

	return r.scanMember(r.pool.QueryRow(ctx, query, memberName))
}

func (r *memberRepository) ExistsByMemberName(ctx context.Context, memberName string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM members WHERE member_name=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, memberName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *memberRepository) scanMember(row pgx.Row) (*domain.Member, error) {
	var member domain.Member
	if err := row.Scan(
		&member.ID,
		&member.MemberName,
		&member.Nickname,
		&member.PasswordHash,
		&member.Authorities,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
