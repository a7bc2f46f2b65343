package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
)

type rolesRepo struct {
	db dbtx
}

func scanRole(row interface{ Scan(...any) error }) (domain.Role, error) {
	var (
		r     domain.Role
		perms string
	)
	err := row.Scan(&r.ID, &r.Name, &r.Description, &perms, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.Role{}, err
	}
	r.Permissions = splitAndFilter(perms)
	return r, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, permissions, created_at, updated_at
		FROM roles WHERE id = ?`, id)
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapErr(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, permissions, created_at, updated_at
		FROM roles WHERE name = ?`, name)
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapErr(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, permissions, created_at, updated_at
		FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, description, permissions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		role.ID, role.Name, role.Description,
		strings.Join(role.Permissions, " "), now, now)
	return mapErr(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, roleID, description string, permissions []string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE roles
		SET description = ?, permissions = ?, updated_at = ?
		WHERE id = ?`,
		description, strings.Join(permissions, " "), time.Now().UTC(), roleID)
	return affectedOrNotFound(res, err)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, roleID)
	return affectedOrNotFound(res, err)
}
