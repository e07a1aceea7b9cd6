package repository

import (
	"context"
	"database/sql"

	"storefront/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

const userColumns = `id, email, password_hash, full_name, COALESCE(phone, ''), COALESCE(address, ''), role, created_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *entity.User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Address, &u.Role, &u.CreatedAt)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (email, password_hash, full_name, phone, address, role) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Address, user.Role)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	var user entity.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAdminByEmail reads the separate admin_users table; back-office accounts
// never mix with storefront customers.
func (r *UserRepository) GetAdminByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM admin_users WHERE email = ?`
	var user entity.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users SET full_name = ?, phone = ?, address = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, user.FullName, user.Phone, user.Address, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}
