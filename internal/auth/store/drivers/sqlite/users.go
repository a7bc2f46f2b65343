package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, kind, email, name, password_hash, phone, address,
	role_id, created_by, superuser, active, otp_code, otp_expires_at,
	last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		kind      string
		roleID    sql.NullString
		createdBy sql.NullString
		otpCode   sql.NullString
		otpExp    sql.NullTime
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &kind, &u.Email, &u.Name, &u.PasswordHash, &u.Phone, &u.Address,
		&roleID, &createdBy, &u.Superuser, &u.Active, &otpCode, &otpExp,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Kind = domain.Kind(kind)
	u.RoleID = mapNullString(roleID)
	u.CreatedBy = mapNullString(createdBy)
	u.OTPCode = mapNullStringPtr(otpCode)
	u.OTPExpiresAt = mapNullTimePtr(otpExp)
	u.LastLogin = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string, kind domain.Kind) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND kind = ?`,
		domain.NormalizeEmail(email), string(kind))
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, kind, email, name, password_hash, phone, address,
			role_id, created_by, superuser, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, string(u.Kind), domain.NormalizeEmail(u.Email), u.Name,
		u.PasswordHash, u.Phone, u.Address,
		mapStringNull(u.RoleID), mapStringNull(u.CreatedBy),
		u.Superuser, u.Active, now, now,
	)
	return mapErr(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name, phone, address string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		name, phone, address, time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) UpdateStaffRole(ctx context.Context, userID, roleID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET role_id = ?, updated_at = ?
		WHERE id = ? AND kind = 'staff'`,
		roleID, time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET active = ?, updated_at = ?
		WHERE id = ?`,
		active, time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, updated_at = ?
		WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp_code = ?, otp_expires_at = ?, updated_at = ?
		WHERE id = ?`,
		code, expiresAt.UTC(), time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) ClearOTP(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) DeleteExpiredOTPs(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp_code = NULL, otp_expires_at = NULL
		WHERE otp_expires_at IS NOT NULL AND otp_expires_at < ?`,
		time.Now().UTC())
	return err
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_login = ? WHERE id = ?`,
		time.Now().UTC(), userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return affectedOrNotFound(res, err)
}

func (r *usersRepo) ListStaff(ctx context.Context, f store.StaffFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE kind = 'staff'`
	var args []any
	if !f.IncludeSuperusers {
		query += ` AND superuser = 0`
	}
	if f.CreatedBy != "" {
		query += ` AND created_by = ?`
		args = append(args, f.CreatedBy)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM users u
		LEFT JOIN roles ro ON ro.id = u.role_id
		WHERE u.kind = 'staff'
		  AND u.active = 1
		  AND (u.superuser = 1 OR ro.name = 'admin')`).Scan(&n)
	return n, err
}

// affectedOrNotFound maps zero-row updates and deletes to store.ErrNotFound.
func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
