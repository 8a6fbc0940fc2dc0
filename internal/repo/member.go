package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geotrails/travelmap/internal/domain"
)

// MemberRepo defines the persistence operations for TeamMembers.
type MemberRepo interface {
	// Create inserts a member and returns it with the generated id.
	Create(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error)

	// List returns every member ordered by id ascending.
	List(ctx context.Context) ([]domain.TeamMember, error)

	// Delete removes a member by id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

type pgMemberRepo struct {
	db db
}

// NewMemberRepo constructs a MemberRepo backed by the provided db connection.
func NewMemberRepo(db db) MemberRepo {
	return &pgMemberRepo{db: db}
}

func (r *pgMemberRepo) Create(ctx context.Context, m domain.TeamMember) (domain.TeamMember, error) {
	const q = `
		INSERT INTO members (name, role, avatar, page_link)
		VALUES (@name, @role, @avatar, @page_link)
		RETURNING id, name, role, avatar, page_link`

	args := pgx.NamedArgs{
		"name":      m.Name,
		"role":      m.Role,
		"avatar":    m.Avatar,
		"page_link": m.PageLink,
	}

	result, err := scanMember(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("repo.MemberRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMemberRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	const q = `SELECT id, name, role, avatar, page_link FROM members ORDER BY id ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MemberRepo.List: %w", err)
	}
	members, err := collect(rows, scanMember)
	if err != nil {
		return nil, fmt.Errorf("repo.MemberRepo.List: %w", err)
	}
	return members, nil
}

func (r *pgMemberRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM members WHERE id = @id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.MemberRepo.Delete: %w", err)
	}
	return nil
}

func scanMember(s scanner) (domain.TeamMember, error) {
	var m domain.TeamMember
	if err := s.Scan(&m.ID, &m.Name, &m.Role, &m.Avatar, &m.PageLink); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TeamMember{}, domain.ErrNotFound
		}
		return domain.TeamMember{}, err
	}
	return m, nil
}
